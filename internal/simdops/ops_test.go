package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat64Ops_DotProduct(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 2, 2, 2, 2}

	assert.InDelta(t, 30.0, Float64Ops().DotProductUnsafe(a, b), 1e-12)
}

func TestScaled(t *testing.T) {
	a := []float64{1, -2, 4}

	got := Scaled(a, 0.5)

	assert.Equal(t, []float64{0.5, -1, 2}, got)
	assert.Equal(t, []float64{1, -2, 4}, a, "input must not be modified")
	assert.Empty(t, Scaled(nil, 2))
}

func TestFloat64Ops_Sum(t *testing.T) {
	ops := Float64Ops()

	assert.InDelta(t, 10.0, ops.Sum([]float64{1, 2, 3, 4}), 1e-12)
}

// BenchmarkIndirectF64DotProduct measures the indirect call through Ops at IIR history sizes.
func BenchmarkIndirectF64DotProduct(b *testing.B) {
	ops := Float64Ops()
	x := make([]float64, 8)
	y := make([]float64, 8)
	for i := range x {
		x[i] = float64(i) * 0.01
		y[i] = float64(i) * 0.02
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(x, y)
	}
}
