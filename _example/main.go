package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/hupe1980/anndataset"
	"github.com/hupe1980/anndataset/container"
)

func main() {
	seed := int64(4711)
	dim := 32
	size := 10000
	numQueries := 100
	k := 10

	rng := rand.New(rand.NewSource(seed))

	points, err := anndataset.NewDenseVectorSet(randomMatrix(rng, size, dim))
	if err != nil {
		log.Fatal(err)
	}

	queries, err := anndataset.NewDenseVectorSet(randomMatrix(rng, numQueries, dim))
	if err != nil {
		log.Fatal(err)
	}

	// Ground truth normally comes from an exact scan; random ids keep the
	// example self-contained.
	neighbors := make([]uint32, numQueries*k)
	distances := make([]float32, numQueries*k)
	for i := range neighbors {
		neighbors[i] = uint32(rng.Intn(size))
		distances[i] = rng.Float32()
	}
	truth, err := anndataset.NewGroundTruth(numQueries, k, neighbors, distances)
	if err != nil {
		log.Fatal(err)
	}

	qs := anndataset.NewQuerySet(queries)
	if err := qs.AddGroundTruth(anndataset.MetricEuclidean, truth); err != nil {
		log.Fatal(err)
	}

	ds := anndataset.New[float32]()
	ds.SetDataPoints(points)
	if err := ds.AddTestQuerySet(qs); err != nil {
		log.Fatal(err)
	}

	dir, err := os.MkdirTemp("", "anndataset")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "random.bin")
	if err := ds.Write(path, anndataset.WithCompression(container.CompressionZstd)); err != nil {
		log.Fatal(err)
	}

	loaded, err := anndataset.Load[float32](path)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Loaded ---")
	fmt.Println(loaded)

	// Score a mock retrieval run against the stored ground truth.
	retrieved := make([][]uint32, numQueries)
	for i := range retrieved {
		retrieved[i] = truth.Neighbors(i)[:k/2]
	}

	qs, err = loaded.TestQuerySet()
	if err != nil {
		log.Fatal(err)
	}
	truth, err = qs.GroundTruth(anndataset.MetricEuclidean)
	if err != nil {
		log.Fatal(err)
	}

	recall, err := truth.MeanRecall(retrieved)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\n--- Recall ---")
	fmt.Printf("Mean recall@%d: %.2f\n", k, recall)
}

func randomMatrix(rng *rand.Rand, rows, cols int) *anndataset.Matrix[float32] {
	data := make([]float32, rows*cols)
	for i := range data {
		data[i] = rng.Float32()
	}
	m, err := anndataset.NewMatrix(rows, cols, data)
	if err != nil {
		log.Fatal(err)
	}
	return m
}
