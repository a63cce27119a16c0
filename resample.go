package signalchain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Resample converts src to a uniform signal at targetRate (the ADC stage).
//
// Output timestamps are k/targetRate for every k with k/targetRate < src.Duration(),
// so the result covers [0, Duration) and never reaches past the last source
// timestamp. Each value is linearly interpolated between the bracketing source
// samples; queries before the first or after the last source timestamp clamp
// to the first or last sample instead of extrapolating.
func Resample(src Signal, targetRate float64) (Signal, error) {
	if !(targetRate > 0) || math.IsInf(targetRate, 0) {
		return Signal{}, fmt.Errorf("%w: target rate must be positive and finite, got %v", ErrInvalidParameter, targetRate)
	}
	if src.Len() == 0 {
		return Signal{}, fmt.Errorf("%w: cannot resample a signal without samples", ErrEmptySignal)
	}

	n := gridLength(src.Duration(), targetRate)
	out := make([]float64, n)
	if n == 0 {
		return newUniform(targetRate, out), nil
	}

	xs, ys := uniqueTimes(src.Times(), src.samples)
	if len(xs) == 1 {
		for k := range out {
			out[k] = ys[0]
		}
		return newUniform(targetRate, out), nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return Signal{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	for k := range out {
		out[k] = pl.Predict(float64(k) / targetRate)
	}

	return newUniform(targetRate, out), nil
}

// gridLength counts the k >= 0 with k/rate < duration.
func gridLength(duration, rate float64) int {
	if !(duration > 0) {
		return 0
	}
	n := int(math.Ceil(duration * rate))
	// Guard the boundary against rounding in duration*rate.
	for n > 0 && float64(n-1)/rate >= duration {
		n--
	}
	for float64(n)/rate < duration {
		n++
	}
	return n
}

// uniqueTimes collapses runs of equal timestamps, keeping the last sample of
// each run, so the result is strictly increasing as interpolation requires.
func uniqueTimes(times, values []float64) (xs, ys []float64) {
	xs = make([]float64, 0, len(times))
	ys = make([]float64, 0, len(values))
	for i, t := range times {
		if last := len(xs) - 1; last >= 0 && xs[last] == t {
			ys[last] = values[i]
			continue
		}
		xs = append(xs, t)
		ys = append(ys, values[i])
	}
	return xs, ys
}
