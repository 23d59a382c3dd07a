package anndataset

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// GroundTruth holds, for each of q queries, the ids of its k exact nearest
// neighbors in the data corpus and the matching distances, ranked best
// first. Tables are immutable once constructed; a query set replaces a
// table wholesale when ground truth for a metric is recomputed.
//
// Neighbor ids index into the data vector set. Validity of the ids against
// a particular corpus is a concern of the consumer, not of construction or
// loading.
type GroundTruth[T Element] struct {
	numQueries int
	k          int
	neighbors  []uint32 // flat row-major q*k
	distances  []T      // flat row-major q*k
}

// NewGroundTruth creates a table from flat row-major neighbor-id and
// distance buffers of shape (numQueries, k). It fails with a ShapeError if
// either buffer disagrees with the shape.
func NewGroundTruth[T Element](numQueries, k int, neighbors []uint32, distances []T) (*GroundTruth[T], error) {
	if numQueries < 0 || k < 0 {
		return nil, shapeErrorf("negative ground truth shape [%d, %d]", numQueries, k)
	}
	if len(neighbors) != numQueries*k {
		return nil, shapeErrorf("ground truth [%d, %d] requires %d neighbor ids, have %d",
			numQueries, k, numQueries*k, len(neighbors))
	}
	if len(distances) != len(neighbors) {
		return nil, shapeErrorf("ground truth has %d neighbor ids but %d distances",
			len(neighbors), len(distances))
	}
	return &GroundTruth[T]{numQueries: numQueries, k: k, neighbors: neighbors, distances: distances}, nil
}

// NumQueries returns the number of queries q.
func (g *GroundTruth[T]) NumQueries() int { return g.numQueries }

// K returns the number of stored neighbors per query.
func (g *GroundTruth[T]) K() int { return g.k }

// Neighbors returns the neighbor ids of query i, ranked best first.
func (g *GroundTruth[T]) Neighbors(i int) []uint32 {
	return g.neighbors[i*g.k : (i+1)*g.k]
}

// Distances returns the distances of query i, parallel to Neighbors(i).
func (g *GroundTruth[T]) Distances(i int) []T {
	return g.distances[i*g.k : (i+1)*g.k]
}

// Recall computes the per-query recall of a retrieved set: the fraction of
// the k true neighbors present among the retrieved ids. Retrieved lists
// may be shorter or longer than k; duplicate ids count once. A table with
// k == 0 yields recall 1.0 for every query.
//
// It fails with a DimensionMismatchError if the outer length of retrieved
// differs from the number of queries.
func (g *GroundTruth[T]) Recall(retrieved [][]uint32) ([]float64, error) {
	if len(retrieved) != g.numQueries {
		return nil, &DimensionMismatchError{Expected: g.numQueries, Actual: len(retrieved)}
	}

	recalls := make([]float64, g.numQueries)
	if g.k == 0 {
		// Vacuously satisfied, nothing to retrieve.
		for i := range recalls {
			recalls[i] = 1.0
		}
		return recalls, nil
	}

	truth := roaring.New()
	got := roaring.New()
	for i := range recalls {
		truth.Clear()
		truth.AddMany(g.Neighbors(i))
		got.Clear()
		got.AddMany(retrieved[i])
		recalls[i] = float64(truth.AndCardinality(got)) / float64(g.k)
	}
	return recalls, nil
}

// MeanRecall computes Recall and returns its arithmetic mean over all
// queries. A table with zero queries yields 1.0.
func (g *GroundTruth[T]) MeanRecall(retrieved [][]uint32) (float64, error) {
	recalls, err := g.Recall(retrieved)
	if err != nil {
		return 0, err
	}
	if len(recalls) == 0 {
		return 1.0, nil
	}
	sum := 0.0
	for _, r := range recalls {
		sum += r
	}
	return sum / float64(len(recalls)), nil
}

// Equal reports whether both tables have the same shape, neighbor ids and
// distances.
func (g *GroundTruth[T]) Equal(other *GroundTruth[T]) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.numQueries != other.numQueries || g.k != other.k {
		return false
	}
	for i, id := range g.neighbors {
		if other.neighbors[i] != id {
			return false
		}
	}
	for i, d := range g.distances {
		if other.distances[i] != d {
			return false
		}
	}
	return true
}

// String returns a human-readable shape summary.
func (g *GroundTruth[T]) String() string {
	return fmt.Sprintf("ground truth with shape [%d, %d]", g.numQueries, g.k)
}
