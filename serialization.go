package anndataset

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/anndataset/container"
)

// File layout. The root group records the element type once; the mandatory
// data corpus lives under "data_points" and every query set under
// "query_sets/<label>". A point-set group carries an explicit "kind" tag,
// the dense block as a "vectors" dataset and the sparse block as a
// "sparse" subgroup in compressed-row form (indptr/indices/data plus the
// logical shape), mirroring the conventional CSR interchange layout.
// Ground truth sits under "ground_truth/<metric label>" with parallel
// "neighbors" and "distances" datasets of shape (q, k).
const (
	attrElementType = "element_type"
	attrKind        = "kind"
	attrShape       = "shape"

	groupDataPoints  = "data_points"
	groupQuerySets   = "query_sets"
	groupSparse      = "sparse"
	groupGroundTruth = "ground_truth"

	datasetVectors   = "vectors"
	datasetIndPtr    = "indptr"
	datasetIndices   = "indices"
	datasetData      = "data"
	datasetNeighbors = "neighbors"
	datasetDistances = "distances"
)

func elementTypeLabel[T Element]() string {
	var zero T
	switch any(zero).(type) {
	case float32:
		return "float32"
	default:
		return "float64"
	}
}

func setFloats[T Element](g *container.Group, name string, shape []int, values []T) error {
	switch v := any(values).(type) {
	case []float32:
		return g.SetFloat32(name, shape, v)
	default:
		return g.SetFloat64(name, shape, v.([]float64))
	}
}

func floats[T Element](g *container.Group, name string) ([]int, []T, bool) {
	var zero T
	switch any(zero).(type) {
	case float32:
		shape, values, ok := g.Float32(name)
		if !ok {
			return nil, nil, false
		}
		return shape, any(values).([]T), true
	default:
		shape, values, ok := g.Float64(name)
		if !ok {
			return nil, nil, false
		}
		return shape, any(values).([]T), true
	}
}

func (d *Dataset[T]) toGroup() (*container.Group, error) {
	if d.dataPoints == nil {
		return nil, fmt.Errorf("%w: cannot write a dataset without data points", ErrMissingData)
	}

	root := container.NewGroup()
	root.SetStringAttr(attrElementType, elementTypeLabel[T]())

	if err := vectorSetToGroup(root.CreateGroup(groupDataPoints), d.dataPoints); err != nil {
		return nil, err
	}

	queries := root.CreateGroup(groupQuerySets)
	for _, label := range d.QuerySetLabels() {
		if err := querySetToGroup(queries.CreateGroup(label), d.querySets[label]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func vectorSetToGroup[T Element](g *container.Group, v *VectorSet[T]) error {
	g.SetStringAttr(attrKind, v.Kind().String())

	if dense := v.Dense(); dense != nil {
		if err := setFloats(g, datasetVectors, []int{dense.Rows(), dense.Cols()}, dense.Data()); err != nil {
			return err
		}
	}
	if sparse := v.Sparse(); sparse != nil {
		sg := g.CreateGroup(groupSparse)
		sg.SetUintsAttr(attrShape, []uint64{uint64(sparse.Rows()), uint64(sparse.Cols())})

		indptr := make([]uint64, len(sparse.IndPtr()))
		for i, p := range sparse.IndPtr() {
			indptr[i] = uint64(p)
		}
		if err := sg.SetUint64(datasetIndPtr, []int{len(indptr)}, indptr); err != nil {
			return err
		}

		indices := make([]uint64, len(sparse.Indices()))
		for i, c := range sparse.Indices() {
			indices[i] = uint64(c)
		}
		if err := sg.SetUint64(datasetIndices, []int{len(indices)}, indices); err != nil {
			return err
		}

		if err := setFloats(sg, datasetData, []int{sparse.NNZ()}, sparse.Data()); err != nil {
			return err
		}
	}
	return nil
}

func querySetToGroup[T Element](g *container.Group, qs *QuerySet[T]) error {
	if err := vectorSetToGroup(g, qs.Points()); err != nil {
		return err
	}

	gt := g.CreateGroup(groupGroundTruth)
	for _, metric := range qs.Metrics() {
		table := qs.groundTruth[metric]
		mg := gt.CreateGroup(metric.String())
		shape := []int{table.NumQueries(), table.K()}
		if err := mg.SetUint32(datasetNeighbors, shape, table.neighbors); err != nil {
			return err
		}
		if err := setFloats(mg, datasetDistances, shape, table.distances); err != nil {
			return err
		}
	}
	return nil
}

func datasetFromGroup[T Element](root *container.Group) (*Dataset[T], error) {
	elementType, ok := root.StringAttr(attrElementType)
	if !ok {
		return nil, fmt.Errorf("%w: file does not record an element type", ErrCorruptFile)
	}
	if want := elementTypeLabel[T](); elementType != want {
		return nil, fmt.Errorf("%w: file stores %s elements, loading as %s", ErrUnsupportedFormat, elementType, want)
	}

	pg, ok := root.Group(groupDataPoints)
	if !ok {
		return nil, fmt.Errorf("%w: file has no %q group", ErrMissingData, groupDataPoints)
	}
	points, err := vectorSetFromGroup[T](pg)
	if err != nil {
		return nil, err
	}

	d := New[T]()
	d.SetDataPoints(points)

	queries, ok := root.Group(groupQuerySets)
	if !ok {
		return d, nil
	}
	for _, label := range queries.GroupNames() {
		qg, _ := queries.Group(label)
		qs, err := querySetFromGroup[T](qg)
		if err != nil {
			return nil, fmt.Errorf("query set %q: %w", label, err)
		}
		if err := d.AddQuerySet(label, qs); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func vectorSetFromGroup[T Element](g *container.Group) (*VectorSet[T], error) {
	label, ok := g.StringAttr(attrKind)
	if !ok {
		return nil, fmt.Errorf("%w: point set group carries no kind tag", ErrCorruptFile)
	}
	kind, err := parseVectorSetKind(label)
	if err != nil {
		return nil, err
	}

	var dense *Matrix[T]
	if kind == KindDense || kind == KindDenseSparse {
		shape, values, ok := floats[T](g, datasetVectors)
		if !ok {
			return nil, fmt.Errorf("%w: %s point set has no %q dataset", ErrCorruptFile, kind, datasetVectors)
		}
		if len(shape) != 2 {
			return nil, fmt.Errorf("%w: dense vectors have %d dimensions, want 2", ErrCorruptFile, len(shape))
		}
		if dense, err = NewMatrix(shape[0], shape[1], values); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFile, err)
		}
	}

	var sparse *CSRMatrix[T]
	if kind == KindSparse || kind == KindDenseSparse {
		sg, ok := g.Group(groupSparse)
		if !ok {
			return nil, fmt.Errorf("%w: %s point set has no %q group", ErrCorruptFile, kind, groupSparse)
		}
		if sparse, err = csrFromGroup[T](sg); err != nil {
			return nil, err
		}
	}

	switch kind {
	case KindDense:
		return NewDenseVectorSet(dense)
	case KindSparse:
		return NewSparseVectorSet(sparse)
	default:
		set, err := NewDenseSparseVectorSet(dense, sparse)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFile, err)
		}
		return set, nil
	}
}

func csrFromGroup[T Element](g *container.Group) (*CSRMatrix[T], error) {
	shape, ok := g.UintsAttr(attrShape)
	if !ok || len(shape) != 2 {
		return nil, fmt.Errorf("%w: corrupt shape attribute for sparse matrix", ErrCorruptFile)
	}
	rows, err := intFromUint64(shape[0])
	if err != nil {
		return nil, err
	}
	cols, err := intFromUint64(shape[1])
	if err != nil {
		return nil, err
	}

	indptr, err := intsFromGroup(g, datasetIndPtr)
	if err != nil {
		return nil, err
	}
	indices, err := intsFromGroup(g, datasetIndices)
	if err != nil {
		return nil, err
	}
	_, values, ok := floats[T](g, datasetData)
	if !ok {
		return nil, fmt.Errorf("%w: sparse matrix has no %q dataset", ErrCorruptFile, datasetData)
	}

	m, err := NewCSRMatrix(rows, cols, indptr, indices, values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptFile, err)
	}
	return m, nil
}

func intsFromGroup(g *container.Group, name string) ([]int, error) {
	_, raw, ok := g.Uint64(name)
	if !ok {
		return nil, fmt.Errorf("%w: sparse matrix has no %q dataset", ErrCorruptFile, name)
	}
	out := make([]int, len(raw))
	for i, v := range raw {
		n, err := intFromUint64(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func intFromUint64(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: value %d overflows the platform int", ErrCorruptFile, v)
	}
	return int(v), nil
}

func querySetFromGroup[T Element](g *container.Group) (*QuerySet[T], error) {
	points, err := vectorSetFromGroup[T](g)
	if err != nil {
		return nil, err
	}
	qs := NewQuerySet(points)

	gt, ok := g.Group(groupGroundTruth)
	if !ok {
		return qs, nil
	}
	for _, label := range gt.GroupNames() {
		metric, err := ParseMetric(label)
		if err != nil {
			return nil, err
		}
		mg, _ := gt.Group(label)
		table, err := groundTruthFromGroup[T](mg)
		if err != nil {
			return nil, err
		}
		if err := qs.AddGroundTruth(metric, table); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFile, err)
		}
	}
	return qs, nil
}

func groundTruthFromGroup[T Element](g *container.Group) (*GroundTruth[T], error) {
	nShape, neighbors, ok := g.Uint32(datasetNeighbors)
	if !ok {
		return nil, fmt.Errorf("%w: ground truth has no %q dataset", ErrCorruptFile, datasetNeighbors)
	}
	dShape, distances, ok := floats[T](g, datasetDistances)
	if !ok {
		return nil, fmt.Errorf("%w: ground truth has no %q dataset", ErrCorruptFile, datasetDistances)
	}
	if len(nShape) != 2 || len(dShape) != 2 || nShape[0] != dShape[0] || nShape[1] != dShape[1] {
		return nil, fmt.Errorf("%w: neighbor shape %v disagrees with distance shape %v", ErrCorruptFile, nShape, dShape)
	}

	table, err := NewGroundTruth(nShape[0], nShape[1], neighbors, distances)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptFile, err)
	}
	return table, nil
}

// classifyContainerError maps container-level decode failures onto the
// dataset error taxonomy. I/O errors pass through untouched.
func classifyContainerError(err error) error {
	switch {
	case errors.Is(err, container.ErrInvalidMagic),
		errors.Is(err, container.ErrInvalidVersion),
		errors.Is(err, container.ErrInvalidCompression):
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	case errors.Is(err, container.ErrChecksumMismatch),
		errors.Is(err, container.ErrTruncated),
		errors.Is(err, container.ErrShapeMismatch):
		return fmt.Errorf("%w: %w", ErrCorruptFile, err)
	default:
		return err
	}
}
