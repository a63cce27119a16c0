package signalchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHold_StepReconstruction(t *testing.T) {
	inputTimes := []float64{0, 1, 2}
	inputValues := []float64{10, 20, 30}
	outputTimes := []float64{-1, 0, 0.5, 1, 1.9, 2, 5}

	got, err := Hold(outputTimes, inputTimes, inputValues)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 10, 10, 20, 20, 30, 30}, got)
}

func TestHold_OutputLengthFollowsOutputTimes(t *testing.T) {
	inputTimes := []float64{0, 1}
	inputValues := []float64{1, 2}

	for _, n := range []int{0, 1, 7, 100} {
		outputTimes := make([]float64, n)
		for i := range outputTimes {
			outputTimes[i] = float64(i) * 0.05
		}
		got, err := Hold(outputTimes, inputTimes, inputValues)
		require.NoError(t, err)
		assert.Len(t, got, n)
	}
}

func TestHold_SingleInput(t *testing.T) {
	got, err := Hold([]float64{-3, 0, 3}, []float64{1}, []float64{42})
	require.NoError(t, err)

	assert.Equal(t, []float64{42, 42, 42}, got)
}

func TestHold_RepeatedInputTimesUseLastIndex(t *testing.T) {
	// The greatest index with input_time <= t wins.
	got, err := Hold([]float64{0.5, 1, 1.5}, []float64{0, 1, 1, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 3, 3}, got)
}

func TestHold_UnsortedOutputTimes(t *testing.T) {
	got, err := Hold([]float64{2.5, 0.1, 1.2}, []float64{0, 1, 2}, []float64{5, 6, 7})
	require.NoError(t, err)

	assert.Equal(t, []float64{7, 5, 6}, got)
}

func TestHold_Errors(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		values []float64
	}{
		{"empty_input_times", nil, nil},
		{"unsorted_input_times", []float64{0, 2, 1}, []float64{1, 2, 3}},
		{"length_mismatch", []float64{0, 1}, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Hold([]float64{0}, tt.times, tt.values)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestHoldSignal_MapsOntoGrid(t *testing.T) {
	grid, err := NewUniform(8, make([]float64, 8))
	require.NoError(t, err)
	coarse, err := NewUniform(2, []float64{1, 2})
	require.NoError(t, err)

	held, err := HoldSignal(grid, coarse)
	require.NoError(t, err)

	assert.Equal(t, 8.0, held.Rate())
	assert.Equal(t, []float64{1, 1, 1, 1, 2, 2, 2, 2}, held.Samples())
}

func TestHoldSignal_TimedSource(t *testing.T) {
	grid, err := NewUniform(4, make([]float64, 6))
	require.NoError(t, err)
	src, err := NewTimed([]float64{0, 0.6}, []float64{-1, 1})
	require.NoError(t, err)

	held, err := HoldSignal(grid, src)
	require.NoError(t, err)

	// Grid times: 0, 0.25, 0.5, 0.75, 1.0, 1.25
	assert.Equal(t, []float64{-1, -1, -1, 1, 1, 1}, held.Samples())
}

func TestHoldSignal_EmptySource(t *testing.T) {
	grid, err := NewUniform(4, make([]float64, 4))
	require.NoError(t, err)
	empty, err := NewUniform(2, nil)
	require.NoError(t, err)

	_, err = HoldSignal(grid, empty)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
