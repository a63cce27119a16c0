package signalchain

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-signal-chain/internal/testutil"
)

const (
	e2eSourceRate  = 8000.0
	e2eToneHz      = 10.0
	e2eSamples     = 8000
	e2eTargetRate  = 2000.0
	e2eCutoffHz    = 800.0
	e2eOrder       = 3
	overshootLimit = 1.2
)

func e2eConfig() Config {
	return Config{TargetRate: e2eTargetRate, Order: e2eOrder, CutoffHz: e2eCutoffHz}
}

func e2eSource() []float64 {
	return testutil.Sine(e2eToneHz, e2eSourceRate, 0.5, e2eSamples)
}

func TestPipeline_EndToEnd(t *testing.T) {
	p, err := Simulate(e2eSourceRate, e2eSource(), e2eConfig())
	require.NoError(t, err)
	assert.Equal(t, StateReconstructed, p.State())

	original, ok := p.Signal(StageOriginal)
	require.True(t, ok)
	sampled, ok := p.Signal(StageSampled)
	require.True(t, ok)
	filtered, ok := p.Signal(StageFiltered)
	require.True(t, ok)
	held, ok := p.Signal(StageHeld)
	require.True(t, ok)
	reconstructed, ok := p.Signal(StageReconstructed)
	require.True(t, ok)

	// Normalized source
	assert.Equal(t, 1.0, original.Peak())
	assert.Equal(t, e2eSourceRate, original.Rate())

	// Target-rate stages
	assert.Equal(t, e2eTargetRate, sampled.Rate())
	assert.Equal(t, 2000, sampled.Len())
	assert.Equal(t, sampled.Len(), filtered.Len())
	assert.Equal(t, e2eTargetRate, filtered.Rate())

	// Source-rate stages
	assert.Equal(t, e2eSourceRate, held.Rate())
	assert.Equal(t, e2eSourceRate, reconstructed.Rate())
	assert.Equal(t, original.Len(), held.Len())
	assert.Equal(t, original.Len(), reconstructed.Len())

	for _, s := range []Signal{sampled, filtered, held, reconstructed} {
		testutil.AssertNoNaNOrInf(t, s.Samples())
		testutil.AssertAllInRange(t, s.Samples(), -overshootLimit, overshootLimit)
	}

	// The held signal steps through the filtered values, one per target period.
	f := filtered.Samples()
	h := held.Samples()
	ratio := int(e2eSourceRate / e2eTargetRate)
	for j, v := range f {
		for i := j * ratio; i < (j+1)*ratio; i++ {
			require.Equal(t, v, h[i], "held[%d] should equal filtered[%d]", i, j)
		}
	}

	assert.LessOrEqual(t, reconstructed.Peak(), original.Peak()*overshootLimit)
}

func TestPipeline_FilterCoefficientsFollowRates(t *testing.T) {
	p, err := Simulate(e2eSourceRate, e2eSource(), e2eConfig())
	require.NoError(t, err)

	digital, err := DesignLowpass(e2eOrder, e2eCutoffHz/(e2eTargetRate/2))
	require.NoError(t, err)
	reconstruction, err := DesignLowpass(e2eOrder, e2eCutoffHz/(e2eSourceRate/2))
	require.NoError(t, err)

	assert.Equal(t, digital, p.DigitalFilter())
	assert.Equal(t, reconstruction, p.ReconstructionFilter())
}

func TestPipeline_Deterministic(t *testing.T) {
	first, err := Simulate(e2eSourceRate, e2eSource(), e2eConfig())
	require.NoError(t, err)
	second, err := Simulate(e2eSourceRate, e2eSource(), e2eConfig())
	require.NoError(t, err)

	for _, stage := range AllStages() {
		a, _ := first.Signal(stage)
		b, _ := second.Signal(stage)
		assert.Equal(t, a.Samples(), b.Samples(), "stage %s", stage)
	}
}

func TestPipeline_Run(t *testing.T) {
	p, err := New(e2eConfig())
	require.NoError(t, err)
	sink := NewMemorySink()

	err = p.Run(MemorySource{SampleRate: e2eSourceRate, Samples: e2eSource()}, sink)
	require.NoError(t, err)
	assert.Equal(t, StatePersisted, p.State())

	require.Contains(t, sink.Outputs, OutputPreReconstruction)
	require.Contains(t, sink.Outputs, OutputFinal)

	held, _ := p.Signal(StageHeld)
	final, _ := p.Signal(StageReconstructed)
	assert.Equal(t, e2eSourceRate, sink.Outputs[OutputPreReconstruction].Rate())
	assert.Equal(t, e2eSourceRate, sink.Outputs[OutputFinal].Rate())
	assert.Equal(t, held.Samples(), sink.Outputs[OutputPreReconstruction].Samples())
	assert.Equal(t, final.Samples(), sink.Outputs[OutputFinal].Samples())
}

type failingSource struct{}

func (failingSource) Load() (float64, []float64, error) {
	return 0, nil, errors.New("disk on fire")
}

type failingSink struct{ failOn string }

func (s failingSink) Store(name string, _ float64, _ []float64) error {
	if name == s.failOn {
		return errors.New("write refused")
	}
	return nil
}

func TestPipeline_RunErrors(t *testing.T) {
	p, err := New(e2eConfig())
	require.NoError(t, err)

	err = p.Run(failingSource{}, NewMemorySink())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load source")
	assert.Equal(t, StateNew, p.State())

	src := MemorySource{SampleRate: e2eSourceRate, Samples: e2eSource()}
	err = p.Run(src, failingSink{failOn: OutputFinal})
	require.Error(t, err)
	assert.Contains(t, err.Error(), OutputFinal)
	assert.Equal(t, StateReconstructed, p.State(), "outputs were not all persisted")
}

func TestPipeline_AllZeroSource(t *testing.T) {
	p, err := New(e2eConfig())
	require.NoError(t, err)

	err = p.Process(e2eSourceRate, make([]float64, 100))
	assert.ErrorIs(t, err, ErrEmptySignal)
	assert.Equal(t, StateNew, p.State())

	_, ok := p.Signal(StageOriginal)
	assert.False(t, ok)
}

func TestPipeline_EmptySource(t *testing.T) {
	_, err := Simulate(e2eSourceRate, nil, e2eConfig())
	assert.ErrorIs(t, err, ErrEmptySignal)
}

func TestPipeline_CutoffAboveSourceNyquist(t *testing.T) {
	cfg := Config{TargetRate: 48000, Order: 2, CutoffHz: 5000}
	require.NoError(t, cfg.Validate())

	_, err := Simulate(8000, e2eSource(), cfg)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestPipeline_SourceTooShortToHold(t *testing.T) {
	p, err := New(e2eConfig())
	require.NoError(t, err)

	// One sample spans zero time, so nothing is sampled and the hold has no input.
	err = p.Process(e2eSourceRate, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, StateFiltered, p.State())

	_, ok := p.Signal(StageHeld)
	assert.False(t, ok)
}

func TestPipeline_ProcessResetsPreviousRun(t *testing.T) {
	p, err := New(e2eConfig())
	require.NoError(t, err)
	require.NoError(t, p.Process(e2eSourceRate, e2eSource()))

	err = p.Process(e2eSourceRate, make([]float64, 10))
	require.Error(t, err)

	_, ok := p.Signal(StageReconstructed)
	assert.False(t, ok, "signals of the previous run must not leak")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero_rate", Config{TargetRate: 0, Order: 3, CutoffHz: 100}, true},
		{"negative_rate", Config{TargetRate: -2000, Order: 3, CutoffHz: 100}, true},
		{"zero_order", Config{TargetRate: 2000, Order: 0, CutoffHz: 800}, true},
		{"zero_cutoff", Config{TargetRate: 2000, Order: 3, CutoffHz: 0}, true},
		{"cutoff_at_nyquist", Config{TargetRate: 2000, Order: 3, CutoffHz: 1000}, true},
		{"cutoff_above_nyquist", Config{TargetRate: 2000, Order: 3, CutoffHz: 1500}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParameter)
				return
			}
			assert.NoError(t, err)

			_, err = New(tt.config)
			assert.NoError(t, err)
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestPipeline_SignalOutOfRange(t *testing.T) {
	p, err := Simulate(e2eSourceRate, e2eSource(), e2eConfig())
	require.NoError(t, err)

	_, ok := p.Signal(Stage(-1))
	assert.False(t, ok)
	_, ok = p.Signal(numStages)
	assert.False(t, ok)
}

func TestPipeline_LogsStages(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := Simulate(e2eSourceRate, e2eSource(), e2eConfig(), WithLogger(logger))
	require.NoError(t, err)

	for _, stage := range AllStages() {
		assert.Contains(t, buf.String(), `"stage":"`+stage.String()+`"`)
	}
}

func TestStageAndStateNames(t *testing.T) {
	assert.Equal(t, "held", StageHeld.String())
	assert.Equal(t, "unknown", Stage(42).String())
	assert.Equal(t, "persisted", StatePersisted.String())
	assert.Equal(t, "unknown", State(-1).String())
	assert.Len(t, AllStages(), int(numStages))
}
