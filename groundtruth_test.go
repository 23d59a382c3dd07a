package anndataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func singleQueryTruth(t *testing.T) *GroundTruth[float32] {
	t.Helper()
	gt, err := NewGroundTruth(1, 5, []uint32{1, 2, 3, 4, 5}, []float32{0.1, 0.2, 0.3, 0.4, 0.5})
	require.NoError(t, err)
	return gt
}

func TestNewGroundTruth(t *testing.T) {
	gt := singleQueryTruth(t)
	require.Equal(t, 1, gt.NumQueries())
	require.Equal(t, 5, gt.K())
	require.Equal(t, []uint32{1, 2, 3, 4, 5}, gt.Neighbors(0))
	require.Equal(t, []float32{0.1, 0.2, 0.3, 0.4, 0.5}, gt.Distances(0))
}

func TestNewGroundTruth_ShapeError(t *testing.T) {
	var shapeErr *ShapeError

	// Neighbor buffer disagrees with the declared shape.
	_, err := NewGroundTruth(2, 3, []uint32{1, 2, 3}, []float32{1, 2, 3})
	require.ErrorAs(t, err, &shapeErr)

	// Distance buffer disagrees with the neighbor buffer.
	_, err = NewGroundTruth(1, 3, []uint32{1, 2, 3}, []float32{1, 2})
	require.ErrorAs(t, err, &shapeErr)

	_, err = NewGroundTruth(-1, 3, nil, []float32{})
	require.ErrorAs(t, err, &shapeErr)
}

func TestMeanRecall_SingleQuery(t *testing.T) {
	gt := singleQueryTruth(t)

	tests := []struct {
		name      string
		retrieved []uint32
		want      float64
	}{
		{"exact match", []uint32{1, 2, 3, 4, 5}, 1.0},
		{"partial match", []uint32{1, 2}, 0.4},
		{"no overlap", []uint32{6, 7, 8, 9, 10}, 0.0},
		{"duplicates count once", []uint32{1, 1, 1}, 0.2},
		{"longer than k", []uint32{1, 2, 3, 4, 5, 6, 7}, 1.0},
		{"empty retrieved", []uint32{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recall, err := gt.MeanRecall([][]uint32{tt.retrieved})
			require.NoError(t, err)
			require.InDelta(t, tt.want, recall, 1e-9)
		})
	}
}

func TestMeanRecall_MultipleQueries(t *testing.T) {
	gt, err := NewGroundTruth(2, 5,
		[]uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		make([]float32, 10))
	require.NoError(t, err)

	// First query recalls everything, second nothing: mean is 0.5.
	recall, err := gt.MeanRecall([][]uint32{{1, 2, 3, 4, 5}, {1, 2, 3, 4, 5}})
	require.NoError(t, err)
	require.InDelta(t, 0.5, recall, 1e-9)

	perQuery, err := gt.Recall([][]uint32{{1, 2, 3, 4, 5}, {1, 2, 3, 4, 5}})
	require.NoError(t, err)
	require.Equal(t, []float64{1.0, 0.0}, perQuery)
}

func TestMeanRecall_DimensionMismatch(t *testing.T) {
	gt := singleQueryTruth(t)

	var mismatch *DimensionMismatchError

	_, err := gt.MeanRecall([][]uint32{{1}, {2}})
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, 1, mismatch.Expected)
	require.Equal(t, 2, mismatch.Actual)

	_, err = gt.MeanRecall(nil)
	require.ErrorAs(t, err, &mismatch)
}

func TestRecall_ZeroK(t *testing.T) {
	gt, err := NewGroundTruth[float32](3, 0, nil, nil)
	require.NoError(t, err)

	// Vacuously satisfied rather than dividing by zero.
	recall, err := gt.Recall([][]uint32{{1}, {}, {2, 3}})
	require.NoError(t, err)
	require.Equal(t, []float64{1.0, 1.0, 1.0}, recall)

	mean, err := gt.MeanRecall([][]uint32{{1}, {}, {2, 3}})
	require.NoError(t, err)
	require.InDelta(t, 1.0, mean, 1e-9)
}

func TestMeanRecall_ZeroQueries(t *testing.T) {
	gt, err := NewGroundTruth[float64](0, 5, nil, nil)
	require.NoError(t, err)

	mean, err := gt.MeanRecall(nil)
	require.NoError(t, err)
	require.InDelta(t, 1.0, mean, 1e-9)
}

func TestGroundTruth_Equal(t *testing.T) {
	a := singleQueryTruth(t)
	b := singleQueryTruth(t)
	require.True(t, a.Equal(b))

	c, err := NewGroundTruth(1, 5, []uint32{1, 2, 3, 4, 6}, []float32{0.1, 0.2, 0.3, 0.4, 0.5})
	require.NoError(t, err)
	require.False(t, a.Equal(c))

	d, err := NewGroundTruth(1, 5, []uint32{1, 2, 3, 4, 5}, []float32{0.1, 0.2, 0.3, 0.4, 0.6})
	require.NoError(t, err)
	require.False(t, a.Equal(d))
	require.False(t, a.Equal(nil))
}
