package anndataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix(2, 3, []float32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	require.Equal(t, []float32{4, 5, 6}, m.Row(1))
}

func TestNewMatrix_ShapeError(t *testing.T) {
	var shapeErr *ShapeError

	_, err := NewMatrix(2, 3, []float32{1, 2, 3})
	require.ErrorAs(t, err, &shapeErr)

	_, err = NewMatrix[float32](-1, 3, nil)
	require.ErrorAs(t, err, &shapeErr)
}

func TestMatrix_Equal(t *testing.T) {
	a, err := NewMatrix(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	b, err := NewMatrix(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	c, err := NewMatrix(2, 2, []float64{1, 2, 3, 5})
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(nil))

	var nilMatrix *Matrix[float64]
	require.True(t, nilMatrix.Equal(nil))
}

func TestNewCSRMatrix(t *testing.T) {
	// 3x4 with entries (0,0)=3, (1,2)=2, (2,0)=-2.
	m, err := NewCSRMatrix(3, 4, []int{0, 1, 2, 3}, []int{0, 2, 0}, []float32{3, 2, -2})
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
	require.Equal(t, 3, m.NNZ())

	cols, values := m.Row(1)
	require.Equal(t, []int{2}, cols)
	require.Equal(t, []float32{2}, values)
}

func TestNewCSRMatrix_ShapeError(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		indptr  []int
		indices []int
		data    []float32
	}{
		{
			name:    "column out of range",
			rows:    1, cols: 4,
			indptr:  []int{0, 1},
			indices: []int{4},
			data:    []float32{1},
		},
		{
			name:    "negative column",
			rows:    1, cols: 4,
			indptr:  []int{0, 1},
			indices: []int{-1},
			data:    []float32{1},
		},
		{
			name:    "duplicate column in row",
			rows:    1, cols: 4,
			indptr:  []int{0, 2},
			indices: []int{1, 1},
			data:    []float32{1, 2},
		},
		{
			name:    "unsorted columns in row",
			rows:    1, cols: 4,
			indptr:  []int{0, 2},
			indices: []int{2, 1},
			data:    []float32{1, 2},
		},
		{
			name:    "indptr wrong length",
			rows:    2, cols: 4,
			indptr:  []int{0, 1},
			indices: []int{0},
			data:    []float32{1},
		},
		{
			name:    "indptr not starting at zero",
			rows:    1, cols: 4,
			indptr:  []int{1, 2},
			indices: []int{0},
			data:    []float32{1},
		},
		{
			name:    "indptr decreasing",
			rows:    2, cols: 4,
			indptr:  []int{0, 1, 0},
			indices: []int{0},
			data:    []float32{1},
		},
		{
			name:    "indices and data length mismatch",
			rows:    1, cols: 4,
			indptr:  []int{0, 2},
			indices: []int{0, 1},
			data:    []float32{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSRMatrix(tt.rows, tt.cols, tt.indptr, tt.indices, tt.data)
			var shapeErr *ShapeError
			require.ErrorAs(t, err, &shapeErr)
		})
	}
}

func TestNewCSRMatrixFromRows(t *testing.T) {
	m, err := NewCSRMatrixFromRows(4, [][]SparseEntry[float32]{
		{{Col: 0, Value: 3}},
		{{Col: 2, Value: 2}},
		{},
		{{Col: 0, Value: -2}, {Col: 3, Value: 1.5}},
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 2, 4}, m.IndPtr())
	require.Equal(t, []int{0, 2, 0, 3}, m.Indices())
	require.Equal(t, []float32{3, 2, -2, 1.5}, m.Data())

	// Duplicate columns are rejected, not merged.
	_, err = NewCSRMatrixFromRows(4, [][]SparseEntry[float32]{
		{{Col: 1, Value: 1}, {Col: 1, Value: 2}},
	})
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestCSRMatrix_Equal(t *testing.T) {
	a, err := NewCSRMatrix(2, 4, []int{0, 1, 2}, []int{0, 2}, []float32{1, 2})
	require.NoError(t, err)
	b, err := NewCSRMatrix(2, 4, []int{0, 1, 2}, []int{0, 2}, []float32{1, 2})
	require.NoError(t, err)
	c, err := NewCSRMatrix(2, 4, []int{0, 1, 2}, []int{0, 3}, []float32{1, 2})
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(nil))
}
