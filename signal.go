package signalchain

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Signal is an ordered sequence of real-valued samples on a time base.
//
// The time base is either a fixed sample rate, implying t[i] = i/rate, or an
// explicit non-decreasing sequence of timestamps of the same length as the
// samples. A Signal is immutable: accessors return copies and every stage of
// the chain produces a new Signal.
type Signal struct {
	rate    float64   // > 0 for uniform signals, 0 for timed ones
	times   []float64 // nil for uniform signals
	samples []float64
}

// NewUniform creates a signal sampled at a fixed rate. The samples are copied.
func NewUniform(rate float64, samples []float64) (Signal, error) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return Signal{}, fmt.Errorf("%w: sample rate must be positive and finite, got %v", ErrInvalidParameter, rate)
	}
	return newUniform(rate, append([]float64(nil), samples...)), nil
}

// NewTimed creates a signal with explicit timestamps. Both slices are copied.
// Timestamps must be finite and non-decreasing, and match samples in length.
func NewTimed(times, samples []float64) (Signal, error) {
	if len(times) != len(samples) {
		return Signal{}, fmt.Errorf("%w: %d timestamps for %d samples", ErrInvalidParameter, len(times), len(samples))
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Signal{}, fmt.Errorf("%w: timestamp %d is not finite", ErrInvalidParameter, i)
		}
	}
	if !sort.Float64sAreSorted(times) {
		return Signal{}, fmt.Errorf("%w: timestamps must be non-decreasing", ErrInvalidParameter)
	}
	ts := make([]float64, len(times)) // non-nil even when empty, which marks the signal as timed
	copy(ts, times)
	return Signal{
		times:   ts,
		samples: append([]float64(nil), samples...),
	}, nil
}

// newUniform wraps samples without copying. Callers hand over ownership.
func newUniform(rate float64, samples []float64) Signal {
	return Signal{rate: rate, samples: samples}
}

// Len returns the number of samples.
func (s Signal) Len() int {
	return len(s.samples)
}

// IsUniform reports whether the signal is defined by a sample rate.
func (s Signal) IsUniform() bool {
	return s.times == nil
}

// Rate returns the sample rate in Hz, or 0 for signals with explicit timestamps.
func (s Signal) Rate() float64 {
	return s.rate
}

// Samples returns a copy of the sample values.
func (s Signal) Samples() []float64 {
	return append([]float64(nil), s.samples...)
}

// TimeAt returns the timestamp of sample i.
func (s Signal) TimeAt(i int) float64 {
	if s.times != nil {
		return s.times[i]
	}
	return float64(i) / s.rate
}

// Times returns the timestamp of every sample.
func (s Signal) Times() []float64 {
	if s.times != nil {
		return append([]float64(nil), s.times...)
	}
	return uniformTimes(s.rate, len(s.samples))
}

// Duration returns the time of the last sample, which is the end of the
// half-open span [0, Duration) that resampling covers. Empty signals have
// zero duration.
func (s Signal) Duration() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.TimeAt(len(s.samples) - 1)
}

// Peak returns max(|sample|), or 0 for an empty signal.
func (s Signal) Peak() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return floats.Norm(s.samples, math.Inf(1))
}

// withSamples returns a signal on the same time base carrying new samples.
func (s Signal) withSamples(samples []float64) Signal {
	return Signal{rate: s.rate, times: s.times, samples: samples}
}

// Normalize returns a copy of s scaled so that its peak absolute amplitude is 1.0.
// It fails with ErrEmptySignal when s has no samples or only zeros.
func Normalize(s Signal) (Signal, error) {
	if s.Len() == 0 {
		return Signal{}, fmt.Errorf("%w: no samples", ErrEmptySignal)
	}
	peak := s.Peak()
	if peak == 0 {
		return Signal{}, fmt.Errorf("%w: all samples are zero", ErrEmptySignal)
	}
	if math.IsNaN(peak) || math.IsInf(peak, 0) {
		return Signal{}, fmt.Errorf("%w: samples must be finite", ErrInvalidParameter)
	}
	// Divide rather than multiply by 1/peak so the peak sample lands exactly on ±1.
	out := make([]float64, len(s.samples))
	for i, v := range s.samples {
		out[i] = v / peak
	}
	return s.withSamples(out), nil
}

// uniformTimes returns i/rate for i in [0, n).
func uniformTimes(rate float64, n int) []float64 {
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) / rate
	}
	return times
}
