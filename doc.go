// Package signalchain simulates the signal path of a digital data-acquisition
// chain in pure Go.
//
// A recorded waveform is sampled by an ADC, filtered digitally, held at the
// output by a zero-order-hold DAC and smoothed by an analog-equivalent
// reconstruction filter. Every intermediate signal is kept so aliasing,
// resampling and reconstruction artifacts can be studied end to end.
//
// # Stages
//
//	source ─► Resample ─► Apply(digital) ─► Hold ─► Apply(reconstruction) ─► outputs
//	 (fs)     (target)      (target)         (fs)          (fs)
//
//   - [Resample]: linear interpolation onto a uniform grid at the target rate,
//     clamped at the signal boundaries.
//   - [DesignLowpass] and [Apply]: Butterworth IIR design through the bilinear
//     transform and causal direct-form filtering from rest.
//   - [Hold]: zero-order hold of the filtered samples back onto the source grid.
//
// The digital filter cutoff is normalized against the target rate's Nyquist
// frequency, the reconstruction filter against the source rate's.
//
// # Quick Start
//
//	p, err := signalchain.Simulate(sourceRate, samples, signalchain.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	held, _ := p.Signal(signalchain.StageHeld)
//	final, _ := p.Signal(signalchain.StageReconstructed)
//
// For file based runs, wire a [Source] and a [Sink] into [Pipeline.Run]. The
// internal/wavio package provides WAV implementations and cmd/signalchain
// ties everything together with configuration and plotting.
//
// # Errors
//
// All failures wrap one of [ErrInvalidParameter], [ErrEmptySignal] or
// [ErrDivisionByZero] and abort the run; nothing is substituted silently.
//
// # Concurrency
//
// Processing is single-threaded and deterministic. Functions in this package
// are safe for concurrent use; a [Pipeline] instance is not.
package signalchain
