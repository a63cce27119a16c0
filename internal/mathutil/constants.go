package mathutil

const (
	// halfDivisor appears in the 2N pole spacing and the 2·fs bilinear constant.
	halfDivisor = 2.0

	// poleStep walks the prototype pole index m in steps of two.
	poleStep = 2

	// DesignSampleRate is the normalized sample rate used for digital design.
	// With fs = 2 the Nyquist frequency is 1, so cutoffs are fractions of Nyquist.
	DesignSampleRate = 2.0
)
