package signalchain

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-signal-chain/internal/mathutil"
	"github.com/tphakala/go-signal-chain/internal/simdops"
)

// Coefficients is a rational transfer function
//
//	H(z) = (B[0] + B[1]z^-1 + ... ) / (A[0] + A[1]z^-1 + ... )
//
// B holds the feed-forward and A the feedback coefficients. Designed filters
// have len(B) == len(A) == order+1 and A[0] == 1; treat them as immutable.
type Coefficients struct {
	B []float64
	A []float64
}

// Order returns the filter order, the larger of the two polynomial degrees.
func (c Coefficients) Order() int {
	return max(len(c.B), len(c.A)) - 1
}

// DesignLowpass designs a Butterworth (maximally flat) low-pass filter.
//
// normalizedCutoff is the -3 dB frequency as a fraction of the Nyquist
// frequency of the rate the filter will run at, so it must lie in (0, 1).
// The analog prototype is pre-warped and mapped with the bilinear transform;
// all zeros sit at z = -1 and the feed-forward polynomial is scaled for
// exactly unity gain at DC.
func DesignLowpass(order int, normalizedCutoff float64) (Coefficients, error) {
	if order < minFilterOrder {
		return Coefficients{}, fmt.Errorf("%w: filter order must be at least %d, got %d",
			ErrInvalidParameter, minFilterOrder, order)
	}
	if !(normalizedCutoff > minNormalizedCutoff && normalizedCutoff < maxNormalizedCutoff) {
		return Coefficients{}, fmt.Errorf("%w: normalized cutoff must be in (0, 1), got %v",
			ErrInvalidParameter, normalizedCutoff)
	}

	const fs = mathutil.DesignSampleRate
	warped := mathutil.PrewarpCutoff(normalizedCutoff, fs)

	prototype := mathutil.ButterworthPoles(order)
	poles := make([]complex128, order)
	for i, p := range prototype {
		poles[i] = mathutil.Bilinear(p*complex(warped, 0), fs)
	}

	a := mathutil.PolyFromRoots(poles)
	zeros := mathutil.BinomialRow(order) // (1 + z^-1)^order

	ops := simdops.Float64Ops()
	b := simdops.Scaled(zeros, ops.Sum(a)/ops.Sum(zeros))

	return Coefficients{B: b, A: a}, nil
}

// Apply filters input causally with c, starting from rest:
//
//	y[n] = (Σ b_k·x[n-k] − Σ_{k≥1} a_k·y[n-k]) / a_0
//
// Samples before index 0 are taken as zero and no state survives the call.
// The output has the same length as the input.
func Apply(c Coefficients, input []float64) ([]float64, error) {
	if len(c.B) == 0 || len(c.A) == 0 {
		return nil, fmt.Errorf("%w: filter coefficients must not be empty", ErrInvalidParameter)
	}
	a0 := c.A[0]
	if a0 == 0 {
		return nil, fmt.Errorf("%w: leading feedback coefficient is zero", ErrDivisionByZero)
	}

	n := len(input)
	nb, na := len(c.B), len(c.A)
	if n == 0 {
		return []float64{}, nil
	}

	// Zero-padded histories: xHist[nb-1+i] = x[i], yHist[na-1+i] = y[i].
	// Reversed coefficients turn each sum into a dot product over a window.
	xHist := make([]float64, nb-1+n)
	copy(xHist[nb-1:], input)
	yHist := make([]float64, na-1+n)
	bRev := reversed(c.B)
	aRev := reversed(c.A[1:])

	dot := simdops.Float64Ops().DotProductUnsafe
	for i := range n {
		acc := dot(bRev, xHist[i:i+nb])
		if na > 1 {
			acc -= dot(aRev, yHist[i:i+na-1])
		}
		yHist[na-1+i] = acc / a0
	}

	return yHist[na-1:], nil
}

// FrequencyResponse evaluates H(e^jw) at angular frequency w in radians per
// sample, where π corresponds to the Nyquist frequency.
func FrequencyResponse(c Coefficients, w float64) complex128 {
	zInv := cmplx.Exp(complex(0, -w))
	return mathutil.PolyEval(c.B, zInv) / mathutil.PolyEval(c.A, zInv)
}

// Magnitude returns |H| at a normalized frequency f in [0, 1], a fraction of Nyquist.
func Magnitude(c Coefficients, f float64) float64 {
	return cmplx.Abs(FrequencyResponse(c, math.Pi*f))
}

// MagnitudeDB returns 20·log10|H| at a normalized frequency f.
func MagnitudeDB(c Coefficients, f float64) float64 {
	return decibelFactor * math.Log10(Magnitude(c, f))
}

// NormalizedCutoff converts a cutoff in Hz to a fraction of the Nyquist
// frequency of sampleRate.
func NormalizedCutoff(cutoffHz, sampleRate float64) float64 {
	return cutoffHz / (sampleRate / nyquistDivisor)
}

func reversed(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
