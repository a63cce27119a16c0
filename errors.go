package signalchain

import "errors"

// Errors returned by the signal chain. Every error is fatal to a pipeline run;
// callers match them with errors.Is and read the wrapped detail from Error().
var (
	// ErrInvalidParameter indicates bad configuration or malformed input:
	// a non-positive rate, an out-of-range cutoff, a non-positive order,
	// unsorted or empty time bases, or mismatched lengths.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptySignal indicates a source with zero length or all-zero amplitude.
	ErrEmptySignal = errors.New("empty signal")

	// ErrDivisionByZero indicates degenerate filter coefficients (a[0] == 0).
	ErrDivisionByZero = errors.New("division by zero")
)
