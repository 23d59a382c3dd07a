package anndataset

import "github.com/hupe1980/anndataset/internal/mathx"

// L2Norms returns the Euclidean norm of every point, computed over the
// concatenation of its dense and sparse dimensions.
func (v *VectorSet[T]) L2Norms() []T {
	norms := make([]T, v.NumPoints())
	if v.dense != nil {
		for i := range norms {
			norms[i] += mathx.SumSquares(v.dense.Row(i))
		}
	}
	if v.sparse != nil {
		for i := range norms {
			_, values := v.sparse.Row(i)
			norms[i] += mathx.SumSquares(values)
		}
	}
	for i, s := range norms {
		norms[i] = mathx.Sqrt(s)
	}
	return norms
}

// L2NormalizeInPlace scales every point to unit Euclidean norm, modifying
// the set in place. Points with zero norm are left untouched.
func (v *VectorSet[T]) L2NormalizeInPlace() {
	norms := v.L2Norms()
	for i, norm := range norms {
		if norm == 0 {
			continue
		}
		inv := 1 / norm
		if v.dense != nil {
			mathx.Scale(v.dense.Row(i), inv)
		}
		if v.sparse != nil {
			_, values := v.sparse.Row(i)
			mathx.Scale(values, inv)
		}
	}
}
