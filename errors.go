package anndataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entry (data points, a named
	// query set) is absent from the dataset.
	ErrNotFound = errors.New("not found")

	// ErrMetricNotFound is returned when a query set holds no ground truth
	// for the requested metric.
	ErrMetricNotFound = errors.New("no ground truth for metric")

	// ErrDuplicateName is returned when adding a query set under a label
	// that is already taken. The container is left unchanged.
	ErrDuplicateName = errors.New("duplicate query set label")

	// ErrMissingData is returned when the mandatory data corpus is absent:
	// by Write when no data points have been set, and by Load when the file
	// lacks the data-points group.
	ErrMissingData = errors.New("missing data points group")

	// ErrCorruptFile is returned by Load when the file is structurally
	// damaged (bad checksum, truncated payload, inconsistent shapes).
	ErrCorruptFile = errors.New("corrupt dataset file")

	// ErrUnsupportedFormat is returned by Load for files this library
	// cannot interpret: wrong magic, unknown format version, unknown
	// vector-set kind, unknown metric label, or a mismatched element type.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// ShapeError indicates structurally inconsistent input at construction
// time: a flat buffer that disagrees with the declared matrix shape, sparse
// column indices out of range or out of order, or mismatched row counts
// between the dense and sparse halves of a vector set.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape error: %s", e.Reason)
}

func shapeErrorf(format string, args ...any) *ShapeError {
	return &ShapeError{Reason: fmt.Sprintf(format, args...)}
}

// DimensionMismatchError indicates a cross-entity size disagreement, e.g.
// a ground-truth table whose query count differs from its query set, or a
// retrieved set whose outer length differs from the number of queries.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}
