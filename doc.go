// Package anndataset manages datasets used to benchmark Approximate Nearest
// Neighbor (ANN) search algorithms: vector collections (dense, sparse, or a
// dense+sparse split), query sets, and exact nearest-neighbor ground truth
// under one or more metrics, persisted in a self-describing hierarchical
// binary container.
//
// # Quick Start
//
//	dense, _ := anndataset.NewMatrix[float32](1000, 128, values)
//	points, _ := anndataset.NewDenseVectorSet(dense)
//
//	ds := anndataset.New[float32]()
//	ds.SetDataPoints(points)
//
//	queries := anndataset.NewQuerySet(queryPoints)
//	gt, _ := anndataset.NewGroundTruth[float32](q, k, neighborIDs, distances)
//	_ = queries.AddGroundTruth(anndataset.MetricEuclidean, gt)
//	_ = ds.AddTestQuerySet(queries)
//
//	_ = ds.Write("glove-100.annd")
//	loaded, _ := anndataset.Load[float32]("glove-100.annd")
//
//	qs, _ := loaded.TestQuerySet()
//	gt, _ = qs.GroundTruth(anndataset.MetricEuclidean)
//	recall, _ := gt.MeanRecall(retrieved)
//
// Datasets can also be stored on any blobstore.BlobStore backend (local
// directory, in-memory, S3, MinIO) via WriteTo and LoadFrom.
//
// The library performs nearest-neighbor *bookkeeping* only: it stores
// benchmark data and evaluates recall. It does not search, and it does not
// build index structures.
package anndataset
