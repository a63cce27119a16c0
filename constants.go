package signalchain

// Filter design limits
const (
	minFilterOrder = 1 // Lowest order accepted by DesignLowpass

	// Normalized cutoffs are fractions of Nyquist and must lie strictly inside (0, 1).
	minNormalizedCutoff = 0.0
	maxNormalizedCutoff = 1.0
)

// Rate conversion
const (
	nyquistDivisor = 2.0 // Nyquist frequency = rate / nyquistDivisor
)

// Output names handed to a Sink by Pipeline.Run.
const (
	// OutputPreReconstruction is the zero-order-hold output before the reconstruction filter.
	OutputPreReconstruction = "pre-reconstruction"

	// OutputFinal is the smoothed output of the reconstruction filter.
	OutputFinal = "final"
)

// Response reporting
const (
	decibelFactor = 20.0 // Amplitude ratio to dB
)
