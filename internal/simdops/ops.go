// Package simdops routes the vector kernels used by filter design and filtering
// through github.com/tphakala/simd, which picks AVX2/SSE/NEON paths at runtime.
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Ops provides SIMD-accelerated float64 operations.
// Function pointers keep call sites independent of the backing implementation.
type Ops struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []float64) float64

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)
}

var ops64 = Ops{
	DotProductUnsafe: f64.DotProductUnsafe,
	Sum:              f64.Sum,
	Scale:            f64.Scale,
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops {
	return &ops64
}

// Scaled returns a new slice holding a * s.
func Scaled(a []float64, s float64) []float64 {
	dst := make([]float64, len(a))
	if len(a) > 0 {
		ops64.Scale(dst, a, s)
	}
	return dst
}
