package anndataset

import "fmt"

// VectorSetKind discriminates the three vector-set shapes. Consumers
// switching on it must treat any other value as an error; the codec writes
// it as an explicit tag so readers never probe for sub-datasets.
type VectorSetKind uint8

const (
	// KindDense is a dense row-major matrix.
	KindDense VectorSetKind = iota + 1
	// KindSparse is a compressed-row sparse matrix.
	KindSparse
	// KindDenseSparse pairs a dense block and a sparse block with aligned rows.
	KindDenseSparse
)

const (
	kindLabelDense       = "dense"
	kindLabelSparse      = "sparse"
	kindLabelDenseSparse = "dense_sparse"
)

// String returns the stable label of the kind, as stored in files.
func (k VectorSetKind) String() string {
	switch k {
	case KindDense:
		return kindLabelDense
	case KindSparse:
		return kindLabelSparse
	case KindDenseSparse:
		return kindLabelDenseSparse
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func parseVectorSetKind(label string) (VectorSetKind, error) {
	switch label {
	case kindLabelDense:
		return KindDense, nil
	case kindLabelSparse:
		return KindSparse, nil
	case kindLabelDenseSparse:
		return KindDenseSparse, nil
	default:
		return 0, fmt.Errorf("%w: unknown vector set kind %q", ErrUnsupportedFormat, label)
	}
}

// VectorSet is a collection of points in one of three shapes: dense,
// sparse, or a dense+sparse split where every point's dimensions divide
// into a dense block and a sparse block.
type VectorSet[T Element] struct {
	kind   VectorSetKind
	dense  *Matrix[T]
	sparse *CSRMatrix[T]
}

// NewDenseVectorSet wraps a dense matrix as a vector set.
func NewDenseVectorSet[T Element](dense *Matrix[T]) (*VectorSet[T], error) {
	if dense == nil {
		return nil, shapeErrorf("dense vector set requires a matrix")
	}
	return &VectorSet[T]{kind: KindDense, dense: dense}, nil
}

// NewSparseVectorSet wraps a sparse matrix as a vector set.
func NewSparseVectorSet[T Element](sparse *CSRMatrix[T]) (*VectorSet[T], error) {
	if sparse == nil {
		return nil, shapeErrorf("sparse vector set requires a matrix")
	}
	return &VectorSet[T]{kind: KindSparse, sparse: sparse}, nil
}

// NewDenseSparseVectorSet combines a dense and a sparse block. Both must
// have the same number of rows; row i of each block describes point i.
func NewDenseSparseVectorSet[T Element](dense *Matrix[T], sparse *CSRMatrix[T]) (*VectorSet[T], error) {
	if dense == nil || sparse == nil {
		return nil, shapeErrorf("dense-sparse vector set requires both matrices")
	}
	if dense.Rows() != sparse.Rows() {
		return nil, shapeErrorf("there are %d dense vectors but %d sparse vectors", dense.Rows(), sparse.Rows())
	}
	return &VectorSet[T]{kind: KindDenseSparse, dense: dense, sparse: sparse}, nil
}

// Kind returns the shape discriminator of the set.
func (v *VectorSet[T]) Kind() VectorSetKind { return v.kind }

// NumPoints returns the number of points in the set.
func (v *VectorSet[T]) NumPoints() int {
	if v.dense != nil {
		return v.dense.Rows()
	}
	return v.sparse.Rows()
}

// NumDenseDimensions returns the number of dense dimensions (0 if the set
// has no dense block).
func (v *VectorSet[T]) NumDenseDimensions() int {
	if v.dense == nil {
		return 0
	}
	return v.dense.Cols()
}

// NumSparseDimensions returns the number of sparse dimensions (0 if the
// set has no sparse block).
func (v *VectorSet[T]) NumSparseDimensions() int {
	if v.sparse == nil {
		return 0
	}
	return v.sparse.Cols()
}

// NumDimensions returns the total number of dimensions.
func (v *VectorSet[T]) NumDimensions() int {
	return v.NumDenseDimensions() + v.NumSparseDimensions()
}

// Dense returns the dense block, or nil if the set has none.
func (v *VectorSet[T]) Dense() *Matrix[T] { return v.dense }

// Sparse returns the sparse block, or nil if the set has none.
func (v *VectorSet[T]) Sparse() *CSRMatrix[T] { return v.sparse }

// Select copies the points with the given ids into a new vector set,
// preserving id order. Ids outside [0, NumPoints) fail with ErrNotFound.
func (v *VectorSet[T]) Select(ids []int) (*VectorSet[T], error) {
	n := v.NumPoints()
	for _, id := range ids {
		if id < 0 || id >= n {
			return nil, fmt.Errorf("%w: point %d outside [0, %d)", ErrNotFound, id, n)
		}
	}

	out := &VectorSet[T]{kind: v.kind}
	if v.dense != nil {
		data := make([]T, 0, len(ids)*v.dense.Cols())
		for _, id := range ids {
			data = append(data, v.dense.Row(id)...)
		}
		dense, err := NewMatrix(len(ids), v.dense.Cols(), data)
		if err != nil {
			return nil, err
		}
		out.dense = dense
	}
	if v.sparse != nil {
		indptr := make([]int, 1, len(ids)+1)
		var indices []int
		var data []T
		for _, id := range ids {
			cols, values := v.sparse.Row(id)
			indices = append(indices, cols...)
			data = append(data, values...)
			indptr = append(indptr, len(indices))
		}
		sparse, err := NewCSRMatrix(len(ids), v.sparse.Cols(), indptr, indices, data)
		if err != nil {
			return nil, err
		}
		out.sparse = sparse
	}
	return out, nil
}

// Equal reports whether both sets have the same kind, shape, values and
// sparse structure.
func (v *VectorSet[T]) Equal(other *VectorSet[T]) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.kind == other.kind && v.dense.Equal(other.dense) && v.sparse.Equal(other.sparse)
}

// String returns a human-readable shape summary.
func (v *VectorSet[T]) String() string {
	switch v.kind {
	case KindDense:
		return fmt.Sprintf("dense set with shape [%d, %d]", v.dense.Rows(), v.dense.Cols())
	case KindSparse:
		return fmt.Sprintf("sparse set with shape [%d, %d]", v.sparse.Rows(), v.sparse.Cols())
	case KindDenseSparse:
		return fmt.Sprintf("dense set with shape [%d, %d]; sparse set with shape [%d, %d]",
			v.dense.Rows(), v.dense.Cols(), v.sparse.Rows(), v.sparse.Cols())
	default:
		return "invalid vector set"
	}
}
