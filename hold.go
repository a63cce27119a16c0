package signalchain

import (
	"fmt"
	"sort"
)

// Hold reconstructs a step signal at outputTimes by zero-order hold (the DAC stage).
//
// Each output takes inputValues[i] for the greatest i with inputTimes[i] <= t.
// Times before the first input clamp to index 0 and times at or after the last
// input use the last index, so the result only changes value at inputTimes.
// inputTimes must be non-empty, sorted ascending and as long as inputValues.
func Hold(outputTimes, inputTimes, inputValues []float64) ([]float64, error) {
	if len(inputTimes) == 0 {
		return nil, fmt.Errorf("%w: hold needs at least one input time", ErrInvalidParameter)
	}
	if len(inputTimes) != len(inputValues) {
		return nil, fmt.Errorf("%w: %d input times for %d input values",
			ErrInvalidParameter, len(inputTimes), len(inputValues))
	}
	if !sort.Float64sAreSorted(inputTimes) {
		return nil, fmt.Errorf("%w: input times must be sorted ascending", ErrInvalidParameter)
	}

	out := make([]float64, len(outputTimes))
	for j, t := range outputTimes {
		out[j] = inputValues[holdIndex(inputTimes, t)]
	}
	return out, nil
}

// holdIndex returns the greatest i with times[i] <= t, clamped to [0, len(times)-1].
func holdIndex(times []float64, t float64) int {
	// First index strictly after t; the held sample is the one before it.
	i := sort.Search(len(times), func(i int) bool { return times[i] > t }) - 1
	return max(i, 0)
}

// HoldSignal maps src onto the time base of grid by zero-order hold. The result
// carries grid's time base and src's values.
func HoldSignal(grid, src Signal) (Signal, error) {
	if src.Len() == 0 {
		return Signal{}, fmt.Errorf("%w: hold needs at least one input time", ErrInvalidParameter)
	}
	var srcTimes []float64
	if src.IsUniform() {
		srcTimes = uniformTimes(src.rate, src.Len())
	} else {
		srcTimes = src.times
	}

	held, err := Hold(grid.Times(), srcTimes, src.samples)
	if err != nil {
		return Signal{}, err
	}
	return grid.withSamples(held), nil
}
