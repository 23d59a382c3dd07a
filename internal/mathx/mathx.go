// Package mathx provides small generic float kernels shared by the norm
// computations. This is an internal package; external users should work
// through the VectorSet API.
package mathx

import "math"

// Float constrains kernels to the dataset element types.
type Float interface {
	~float32 | ~float64
}

// SumSquares returns the sum of squared elements.
func SumSquares[T Float](a []T) T {
	var ret T
	for _, v := range a {
		ret += v * v
	}
	return ret
}

// Scale multiplies all elements of a by scalar in place.
func Scale[T Float](a []T, scalar T) {
	for i := range a {
		a[i] *= scalar
	}
}

// Sqrt returns the square root of v in the element type.
func Sqrt[T Float](v T) T {
	return T(math.Sqrt(float64(v)))
}
