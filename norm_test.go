package anndataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestL2Norms_Dense(t *testing.T) {
	set, err := NewDenseVectorSet(eye(t, 10))
	require.NoError(t, err)

	for _, norm := range set.L2Norms() {
		require.InDelta(t, 1.0, norm, 0.01)
	}
}

func TestL2Norms_DenseSparse(t *testing.T) {
	set, err := NewDenseSparseVectorSet(eye(t, 10), sampleSparse(t))
	require.NoError(t, err)

	want := []float64{3.16, 2.23, 1.0, 2.23, 1.0, 1.0, 1.0, 1.0, 1.0, 3.54}
	norms := set.L2Norms()
	require.Len(t, norms, 10)
	for i, norm := range norms {
		require.InDelta(t, want[i], float64(norm), 0.01)
	}
}

func TestL2Norms_Sparse(t *testing.T) {
	set, err := NewSparseVectorSet(sampleSparse(t))
	require.NoError(t, err)

	want := []float64{3.0, 2.0, 0.0, 2.0, 0.0, 0.0, 0.0, 0.0, 0.0, 3.4}
	for i, norm := range set.L2Norms() {
		require.InDelta(t, want[i], float64(norm), 0.01)
	}
}

func TestL2NormalizeInPlace(t *testing.T) {
	set, err := NewDenseSparseVectorSet(eye(t, 10), sampleSparse(t))
	require.NoError(t, err)

	set.L2NormalizeInPlace()
	for _, norm := range set.L2Norms() {
		require.InDelta(t, 1.0, norm, 0.01)
	}
}

func TestL2NormalizeInPlace_ZeroPoints(t *testing.T) {
	set, err := NewSparseVectorSet(sampleSparse(t))
	require.NoError(t, err)

	set.L2NormalizeInPlace()
	want := []float64{1.0, 1.0, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0, 0.0, 1.0}
	for i, norm := range set.L2Norms() {
		require.InDelta(t, want[i], float64(norm), 0.01)
	}
}
