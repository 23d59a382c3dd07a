package anndataset

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/anndataset/blobstore"
	"github.com/hupe1980/anndataset/container"
)

// Fixed query-set labels for the conventional train/validation/test split.
// Arbitrary labels are allowed through AddQuerySet.
const (
	TrainQuerySetLabel      = "train_query_set"
	ValidationQuerySetLabel = "validation_query_set"
	TestQuerySetLabel       = "test_query_set"
)

// Dataset is the top-level container: one data corpus plus zero or more
// named query sets. It exclusively owns everything it holds; loading and
// writing always operate on the whole container, never incrementally.
//
// A Dataset is not safe for concurrent mutation. Concurrent use requires
// each goroutine to own a distinct instance.
type Dataset[T Element] struct {
	dataPoints *VectorSet[T]
	querySets  map[string]*QuerySet[T]
}

// New creates an empty dataset.
func New[T Element]() *Dataset[T] {
	return &Dataset[T]{
		querySets: make(map[string]*QuerySet[T]),
	}
}

// SetDataPoints sets the data corpus. There is exactly one (unnamed) data
// corpus per dataset; setting it again replaces the previous one.
func (d *Dataset[T]) SetDataPoints(points *VectorSet[T]) {
	d.dataPoints = points
}

// DataPoints returns the data corpus, or ErrNotFound if none has been set.
func (d *Dataset[T]) DataPoints() (*VectorSet[T], error) {
	if d.dataPoints == nil {
		return nil, fmt.Errorf("%w: data points", ErrNotFound)
	}
	return d.dataPoints, nil
}

// NumDataPoints returns the number of points in the data corpus (0 if the
// corpus has not been set).
func (d *Dataset[T]) NumDataPoints() int {
	if d.dataPoints == nil {
		return 0
	}
	return d.dataPoints.NumPoints()
}

// AddQuerySet adds a query set under the given label. It fails with
// ErrDuplicateName if the label is already taken, leaving the dataset
// unchanged. Use ReplaceQuerySet to overwrite.
func (d *Dataset[T]) AddQuerySet(label string, qs *QuerySet[T]) error {
	if _, ok := d.querySets[label]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, label)
	}
	d.querySets[label] = qs
	return nil
}

// ReplaceQuerySet adds a query set under the given label, replacing any
// existing set with that label.
func (d *Dataset[T]) ReplaceQuerySet(label string, qs *QuerySet[T]) {
	d.querySets[label] = qs
}

// QuerySet returns the query set with the given label, or ErrNotFound.
func (d *Dataset[T]) QuerySet(label string) (*QuerySet[T], error) {
	qs, ok := d.querySets[label]
	if !ok {
		return nil, fmt.Errorf("%w: query set %q", ErrNotFound, label)
	}
	return qs, nil
}

// NumQueryPoints returns the number of query points in the labeled set,
// or ErrNotFound if the label is absent.
func (d *Dataset[T]) NumQueryPoints(label string) (int, error) {
	qs, err := d.QuerySet(label)
	if err != nil {
		return 0, err
	}
	return qs.NumQueries(), nil
}

// QuerySetLabels returns all query set labels in sorted order.
func (d *Dataset[T]) QuerySetLabels() []string {
	labels := make([]string, 0, len(d.querySets))
	for label := range d.querySets {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// AddTrainQuerySet adds a query set under the "train" label.
func (d *Dataset[T]) AddTrainQuerySet(qs *QuerySet[T]) error {
	return d.AddQuerySet(TrainQuerySetLabel, qs)
}

// AddValidationQuerySet adds a query set under the "validation" label.
func (d *Dataset[T]) AddValidationQuerySet(qs *QuerySet[T]) error {
	return d.AddQuerySet(ValidationQuerySetLabel, qs)
}

// AddTestQuerySet adds a query set under the "test" label.
func (d *Dataset[T]) AddTestQuerySet(qs *QuerySet[T]) error {
	return d.AddQuerySet(TestQuerySetLabel, qs)
}

// TrainQuerySet returns the "train" query set, or ErrNotFound.
func (d *Dataset[T]) TrainQuerySet() (*QuerySet[T], error) {
	return d.QuerySet(TrainQuerySetLabel)
}

// ValidationQuerySet returns the "validation" query set, or ErrNotFound.
func (d *Dataset[T]) ValidationQuerySet() (*QuerySet[T], error) {
	return d.QuerySet(ValidationQuerySetLabel)
}

// TestQuerySet returns the "test" query set, or ErrNotFound.
func (d *Dataset[T]) TestQuerySet() (*QuerySet[T], error) {
	return d.QuerySet(TestQuerySetLabel)
}

// Equal reports whether both datasets hold equal corpora and equal query
// sets under the same labels.
func (d *Dataset[T]) Equal(other *Dataset[T]) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !d.dataPoints.Equal(other.dataPoints) || len(d.querySets) != len(other.querySets) {
		return false
	}
	for label, qs := range d.querySets {
		if !qs.Equal(other.querySets[label]) {
			return false
		}
	}
	return true
}

// String returns a human-readable summary.
func (d *Dataset[T]) String() string {
	var b strings.Builder
	if d.dataPoints == nil {
		b.WriteString("data points: none")
	} else {
		fmt.Fprintf(&b, "data points: %s", d.dataPoints)
	}
	for _, label := range d.QuerySetLabels() {
		fmt.Fprintf(&b, "\n%s: %s", label, d.querySets[label])
	}
	return b.String()
}

// Write stores the dataset at the given path. The file is written to a
// temporary sibling and atomically renamed, so an interrupted write never
// leaves a partial file at path. Writing a dataset without data points
// fails with ErrMissingData.
func (d *Dataset[T]) Write(path string, opts ...Option) error {
	o := applyOptions(opts)

	root, err := d.toGroup()
	if err != nil {
		o.logger.LogWrite(context.Background(), path, d.NumDataPoints(), err)
		return err
	}
	err = container.WriteFile(path, root, o.compression)
	o.logger.LogWrite(context.Background(), path, d.NumDataPoints(), err)
	return err
}

// Load reads a dataset from the given path. The element type parameter
// must match the element type recorded in the file, otherwise Load fails
// with ErrUnsupportedFormat. A structurally damaged file fails with
// ErrCorruptFile (or ErrMissingData if the data-points group is absent);
// no partially populated dataset is ever returned.
func Load[T Element](path string, opts ...Option) (*Dataset[T], error) {
	o := applyOptions(opts)

	root, err := container.ReadFile(path)
	if err != nil {
		err = classifyContainerError(err)
		o.logger.LogLoad(context.Background(), path, 0, err)
		return nil, err
	}
	d, err := datasetFromGroup[T](root)
	if err != nil {
		o.logger.LogLoad(context.Background(), path, 0, err)
		return nil, err
	}
	o.logger.LogLoad(context.Background(), path, d.NumDataPoints(), nil)
	return d, nil
}

// WriteTo stores the dataset as a single blob on the given store. Blob
// stores put objects atomically, so readers never observe partial writes.
func (d *Dataset[T]) WriteTo(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) error {
	o := applyOptions(opts)

	root, err := d.toGroup()
	if err != nil {
		o.logger.LogWrite(ctx, name, d.NumDataPoints(), err)
		return err
	}
	data, err := container.Encode(root, o.compression)
	if err == nil {
		err = store.Put(ctx, name, data)
	}
	o.logger.LogWrite(ctx, name, d.NumDataPoints(), err)
	return err
}

// LoadFrom reads a dataset blob from the given store. Error semantics
// match Load.
func LoadFrom[T Element](ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*Dataset[T], error) {
	o := applyOptions(opts)

	data, err := store.Get(ctx, name)
	if err != nil {
		o.logger.LogLoad(ctx, name, 0, err)
		return nil, err
	}
	root, err := container.Decode(data)
	if err != nil {
		err = classifyContainerError(err)
		o.logger.LogLoad(ctx, name, 0, err)
		return nil, err
	}
	d, err := datasetFromGroup[T](root)
	if err != nil {
		o.logger.LogLoad(ctx, name, 0, err)
		return nil, err
	}
	o.logger.LogLoad(ctx, name, d.NumDataPoints(), nil)
	return d, nil
}
