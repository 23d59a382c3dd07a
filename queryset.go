package anndataset

import (
	"fmt"
	"sort"
)

// QuerySet pairs a set of query points with exact nearest-neighbor ground
// truth under zero or more metrics. A query set can exist before any
// ground truth has been computed for it.
type QuerySet[T Element] struct {
	points      *VectorSet[T]
	groundTruth map[Metric]*GroundTruth[T]
}

// NewQuerySet wraps a vector set of query points. The ground-truth map
// starts empty.
func NewQuerySet[T Element](points *VectorSet[T]) *QuerySet[T] {
	return &QuerySet[T]{
		points:      points,
		groundTruth: make(map[Metric]*GroundTruth[T]),
	}
}

// Points returns the query points.
func (q *QuerySet[T]) Points() *VectorSet[T] { return q.points }

// NumQueries returns the number of query points.
func (q *QuerySet[T]) NumQueries() int { return q.points.NumPoints() }

// AddGroundTruth attaches a ground-truth table for the given metric. The
// table's query count must match the number of query points, otherwise a
// DimensionMismatchError is returned.
//
// Ground truth for a metric is a single fact: attaching a table for a
// metric that already has one replaces the previous table (last write
// wins) rather than erroring.
func (q *QuerySet[T]) AddGroundTruth(metric Metric, table *GroundTruth[T]) error {
	if table.NumQueries() != q.points.NumPoints() {
		return &DimensionMismatchError{Expected: q.points.NumPoints(), Actual: table.NumQueries()}
	}
	q.groundTruth[metric] = table
	return nil
}

// GroundTruth returns the ground-truth table for the given metric, or
// ErrMetricNotFound if none has been attached.
func (q *QuerySet[T]) GroundTruth(metric Metric) (*GroundTruth[T], error) {
	table, ok := q.groundTruth[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMetricNotFound, metric)
	}
	return table, nil
}

// Metrics returns the metrics with attached ground truth, in stable order.
func (q *QuerySet[T]) Metrics() []Metric {
	metrics := make([]Metric, 0, len(q.groundTruth))
	for m := range q.groundTruth {
		metrics = append(metrics, m)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i] < metrics[j] })
	return metrics
}

// Equal reports whether both query sets hold equal points and equal
// ground truth for the same metrics.
func (q *QuerySet[T]) Equal(other *QuerySet[T]) bool {
	if q == nil || other == nil {
		return q == other
	}
	if !q.points.Equal(other.points) || len(q.groundTruth) != len(other.groundTruth) {
		return false
	}
	for metric, table := range q.groundTruth {
		if !table.Equal(other.groundTruth[metric]) {
			return false
		}
	}
	return true
}

// String returns a human-readable summary.
func (q *QuerySet[T]) String() string {
	return fmt.Sprintf("%s; ground truth for %d metric(s)", q.points, len(q.groundTruth))
}
