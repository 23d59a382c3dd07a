package anndataset

// Element is the floating-point element type of a dataset. The whole
// container is bound to one element type for its lifetime: all dense and
// sparse values and all ground-truth distances share it.
type Element interface {
	float32 | float64
}

// Matrix is a row-major dense matrix. Every row is one point.
type Matrix[T Element] struct {
	rows, cols int
	data       []T
}

// NewMatrix creates a dense matrix over the given flat row-major buffer.
// It fails with a ShapeError if the buffer length disagrees with
// rows*cols or a dimension is negative.
func NewMatrix[T Element](rows, cols int, data []T) (*Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return nil, shapeErrorf("negative matrix dimensions [%d, %d]", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, shapeErrorf("matrix [%d, %d] requires %d values, have %d", rows, cols, rows*cols, len(data))
	}
	return &Matrix[T]{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// Data returns the flat row-major value buffer.
func (m *Matrix[T]) Data() []T { return m.data }

// Row returns row i as a contiguous slice aliasing the matrix buffer.
func (m *Matrix[T]) Row(i int) []T {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// Equal reports whether both matrices have the same shape and values.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// SparseEntry is one nonzero entry of a sparse row.
type SparseEntry[T Element] struct {
	Col   int
	Value T
}

// CSRMatrix is a compressed-sparse-row matrix. Row i spans
// indices[indptr[i]:indptr[i+1]] and data[indptr[i]:indptr[i+1]]; column
// indices within a row are strictly increasing, so duplicate columns are
// structurally impossible. Duplicates in input are rejected, never merged.
type CSRMatrix[T Element] struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []T
}

// NewCSRMatrix creates a CSR matrix from its three parallel arrays and
// validates the structural invariants. Violations fail with a ShapeError.
func NewCSRMatrix[T Element](rows, cols int, indptr, indices []int, data []T) (*CSRMatrix[T], error) {
	if rows < 0 || cols < 0 {
		return nil, shapeErrorf("negative sparse matrix dimensions [%d, %d]", rows, cols)
	}
	if len(indptr) != rows+1 {
		return nil, shapeErrorf("indptr has %d entries, want %d for %d rows", len(indptr), rows+1, rows)
	}
	if indptr[0] != 0 {
		return nil, shapeErrorf("indptr must start at 0, starts at %d", indptr[0])
	}
	if len(indices) != len(data) {
		return nil, shapeErrorf("%d column indices but %d values", len(indices), len(data))
	}
	if indptr[rows] != len(indices) {
		return nil, shapeErrorf("indptr ends at %d but there are %d nonzero entries", indptr[rows], len(indices))
	}
	for i := 0; i < rows; i++ {
		if indptr[i+1] < indptr[i] {
			return nil, shapeErrorf("indptr decreases at row %d", i)
		}
		for j := indptr[i]; j < indptr[i+1]; j++ {
			col := indices[j]
			if col < 0 || col >= cols {
				return nil, shapeErrorf("row %d has column %d outside [0, %d)", i, col, cols)
			}
			if j > indptr[i] && indices[j-1] >= col {
				return nil, shapeErrorf("row %d has non-increasing columns %d, %d", i, indices[j-1], col)
			}
		}
	}
	return &CSRMatrix[T]{rows: rows, cols: cols, indptr: indptr, indices: indices, data: data}, nil
}

// NewCSRMatrixFromRows builds a CSR matrix from per-row entry lists.
// Entry order within a row is preserved and validated, not sorted.
func NewCSRMatrixFromRows[T Element](cols int, rows [][]SparseEntry[T]) (*CSRMatrix[T], error) {
	indptr := make([]int, len(rows)+1)
	nnz := 0
	for i, row := range rows {
		nnz += len(row)
		indptr[i+1] = nnz
	}

	indices := make([]int, 0, nnz)
	data := make([]T, 0, nnz)
	for _, row := range rows {
		for _, e := range row {
			indices = append(indices, e.Col)
			data = append(data, e.Value)
		}
	}
	return NewCSRMatrix(len(rows), cols, indptr, indices, data)
}

// Rows returns the number of rows.
func (m *CSRMatrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *CSRMatrix[T]) Cols() int { return m.cols }

// NNZ returns the number of stored nonzero entries.
func (m *CSRMatrix[T]) NNZ() int { return len(m.data) }

// IndPtr returns the row-pointer array (length Rows+1).
func (m *CSRMatrix[T]) IndPtr() []int { return m.indptr }

// Indices returns the flat column-index array.
func (m *CSRMatrix[T]) Indices() []int { return m.indices }

// Data returns the flat nonzero-value array.
func (m *CSRMatrix[T]) Data() []T { return m.data }

// Row returns the column indices and values of row i, aliasing the
// underlying buffers. Columns are strictly increasing.
func (m *CSRMatrix[T]) Row(i int) ([]int, []T) {
	lo, hi := m.indptr[i], m.indptr[i+1]
	return m.indices[lo:hi], m.data[lo:hi]
}

// Equal reports whether both matrices have the same shape and the exact
// same sparse structure and values.
func (m *CSRMatrix[T]) Equal(other *CSRMatrix[T]) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.rows != other.rows || m.cols != other.cols || len(m.data) != len(other.data) {
		return false
	}
	for i, v := range m.indptr {
		if other.indptr[i] != v {
			return false
		}
	}
	for i, v := range m.indices {
		if other.indices[i] != v {
			return false
		}
	}
	for i, v := range m.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}
