// Package mathutil provides the polynomial and pole arithmetic behind IIR filter design.
package mathutil

import (
	"math"
	"math/cmplx"
)

// PolyFromRoots expands Π(z - r) into polynomial coefficients in descending powers,
// i.e. c[0]*z^n + c[1]*z^(n-1) + ... + c[n]. The leading coefficient is always 1.
//
// Roots are expected to be real or to come in complex-conjugate pairs, so the
// imaginary parts of the expansion are rounding noise and are discarded.
func PolyFromRoots(roots []complex128) []float64 {
	acc := make([]complex128, len(roots)+1)
	acc[0] = 1

	for k, r := range roots {
		// Multiply the degree-k polynomial in acc[0..k] by (z - r), in place from the top.
		for i := k + 1; i > 0; i-- {
			acc[i] -= r * acc[i-1]
		}
	}

	coeffs := make([]float64, len(acc))
	for i, c := range acc {
		coeffs[i] = real(c)
	}
	return coeffs
}

// BinomialRow returns the n-th row of Pascal's triangle: the coefficients of (z + 1)^n.
func BinomialRow(n int) []float64 {
	if n < 0 {
		return nil
	}
	row := make([]float64, n+1)
	row[0] = 1
	for k := 1; k <= n; k++ {
		row[k] = row[k-1] * float64(n-k+1) / float64(k)
	}
	return row
}

// PolyEval evaluates c[0]*z^(n) + ... + c[n] at z^-1 = zInv using Horner's scheme
// on the reversed ordering, which is the form used for transfer functions
// H(z) = Σ c[k] z^-k.
func PolyEval(coeffs []float64, zInv complex128) complex128 {
	var acc complex128
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc*zInv + complex(coeffs[i], 0)
	}
	return acc
}

// ButterworthPoles returns the left-half-plane poles of the unit-cutoff analog
// Butterworth prototype of the given order:
//
//	p_m = -exp(jπm / 2N),  m = -N+1, -N+3, ..., N-1
//
// Conjugate pairs are adjacent in the returned slice; odd orders include the real pole -1.
func ButterworthPoles(order int) []complex128 {
	if order < 1 {
		return nil
	}
	poles := make([]complex128, 0, order)
	n := float64(order)
	for m := -order + 1; m < order; m += poleStep {
		theta := math.Pi * float64(m) / (halfDivisor * n)
		poles = append(poles, -cmplx.Exp(complex(0, theta)))
	}
	return poles
}

// PrewarpCutoff maps a digital cutoff, expressed as a fraction of Nyquist, to the
// analog angular frequency that the bilinear transform with sample rate fs sends
// back onto it.
func PrewarpCutoff(normalizedCutoff, fs float64) float64 {
	return halfDivisor * fs * math.Tan(math.Pi*normalizedCutoff/fs)
}

// Bilinear maps an analog pole or zero s to the z-plane with the bilinear
// transform z = (2fs + s) / (2fs - s).
func Bilinear(s complex128, fs float64) complex128 {
	fs2 := complex(halfDivisor*fs, 0)
	return (fs2 + s) / (fs2 - s)
}
