package anndataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func eye(t *testing.T, n int) *Matrix[float32] {
	t.Helper()
	data := make([]float32, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	m, err := NewMatrix(n, n, data)
	require.NoError(t, err)
	return m
}

// sampleSparse builds a 10x4 matrix with entries (0,0)=3, (1,2)=2,
// (3,0)=-2, (9,2)=3.4.
func sampleSparse(t *testing.T) *CSRMatrix[float32] {
	t.Helper()
	rows := make([][]SparseEntry[float32], 10)
	rows[0] = []SparseEntry[float32]{{Col: 0, Value: 3}}
	rows[1] = []SparseEntry[float32]{{Col: 2, Value: 2}}
	rows[3] = []SparseEntry[float32]{{Col: 0, Value: -2}}
	rows[9] = []SparseEntry[float32]{{Col: 2, Value: 3.4}}
	m, err := NewCSRMatrixFromRows(4, rows)
	require.NoError(t, err)
	return m
}

func TestNewVectorSet(t *testing.T) {
	dense := eye(t, 10)
	sparse := sampleSparse(t)

	ds, err := NewDenseVectorSet(dense)
	require.NoError(t, err)
	require.Equal(t, KindDense, ds.Kind())
	require.Equal(t, 10, ds.NumPoints())
	require.Equal(t, 10, ds.NumDimensions())

	ss, err := NewSparseVectorSet(sparse)
	require.NoError(t, err)
	require.Equal(t, KindSparse, ss.Kind())
	require.Equal(t, 10, ss.NumPoints())
	require.Equal(t, 4, ss.NumDimensions())

	both, err := NewDenseSparseVectorSet(dense, sparse)
	require.NoError(t, err)
	require.Equal(t, KindDenseSparse, both.Kind())
	require.Equal(t, 10, both.NumPoints())
	require.Equal(t, 10, both.NumDenseDimensions())
	require.Equal(t, 4, both.NumSparseDimensions())
	require.Equal(t, 14, both.NumDimensions())
}

func TestNewVectorSet_Invalid(t *testing.T) {
	var shapeErr *ShapeError

	_, err := NewDenseVectorSet[float32](nil)
	require.ErrorAs(t, err, &shapeErr)

	_, err = NewSparseVectorSet[float32](nil)
	require.ErrorAs(t, err, &shapeErr)

	// Row counts must agree: 5 dense rows vs 10 sparse rows.
	_, err = NewDenseSparseVectorSet(eye(t, 5), sampleSparse(t))
	require.ErrorAs(t, err, &shapeErr)
}

func TestVectorSet_Select(t *testing.T) {
	set, err := NewDenseSparseVectorSet(eye(t, 10), sampleSparse(t))
	require.NoError(t, err)

	subset, err := set.Select([]int{0, 3, 9})
	require.NoError(t, err)
	require.Equal(t, 3, subset.NumPoints())
	require.Equal(t, KindDenseSparse, subset.Kind())

	require.Equal(t, float32(1), subset.Dense().Row(1)[3])

	cols, values := subset.Sparse().Row(1)
	require.Equal(t, []int{0}, cols)
	require.Equal(t, []float32{-2}, values)

	cols, values = subset.Sparse().Row(2)
	require.Equal(t, []int{2}, cols)
	require.Equal(t, []float32{3.4}, values)

	_, err = set.Select([]int{10})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = set.Select([]int{-1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVectorSet_Equal(t *testing.T) {
	a, err := NewDenseSparseVectorSet(eye(t, 10), sampleSparse(t))
	require.NoError(t, err)
	b, err := NewDenseSparseVectorSet(eye(t, 10), sampleSparse(t))
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	dense, err := NewDenseVectorSet(eye(t, 10))
	require.NoError(t, err)
	require.False(t, a.Equal(dense))
	require.False(t, a.Equal(nil))
}

func TestVectorSet_String(t *testing.T) {
	set, err := NewDenseSparseVectorSet(eye(t, 10), sampleSparse(t))
	require.NoError(t, err)
	require.Equal(t, "dense set with shape [10, 10]; sparse set with shape [10, 4]", set.String())
}
