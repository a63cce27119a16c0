package signalchain

// Defaults of the classic bench setup: a 2 kHz converter pair with a third
// order 800 Hz low-pass on both sides.
const (
	// DefaultTargetRate is the default ADC/DAC sample rate in Hz.
	DefaultTargetRate = 2000.0

	// DefaultCutoffHz is the default cutoff of both low-pass filters.
	DefaultCutoffHz = 800.0

	// DefaultOrder is the default Butterworth order.
	DefaultOrder = 3
)

// DefaultConfig returns the default chain configuration.
func DefaultConfig() Config {
	return Config{
		TargetRate: DefaultTargetRate,
		Order:      DefaultOrder,
		CutoffHz:   DefaultCutoffHz,
	}
}

// Simulate runs the chain once on samples taken at sampleRate and returns the
// pipeline holding every intermediate signal.
//
// This is the simplest way to study a waveform when no file I/O is involved:
//
//	p, err := signalchain.Simulate(8000, samples, signalchain.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	final, _ := p.Signal(signalchain.StageReconstructed)
func Simulate(sampleRate float64, samples []float64, config Config, opts ...Option) (*Pipeline, error) {
	p, err := New(config, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Process(sampleRate, samples); err != nil {
		return nil, err
	}
	return p, nil
}

// MemorySink collects pipeline outputs in memory. It is handy for tests and
// for callers that post-process the outputs themselves.
type MemorySink struct {
	Outputs map[string]Signal
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{Outputs: make(map[string]Signal)}
}

// Store records a copy of samples under name.
func (m *MemorySink) Store(name string, sampleRate float64, samples []float64) error {
	s, err := NewUniform(sampleRate, samples)
	if err != nil {
		return err
	}
	m.Outputs[name] = s
	return nil
}

// MemorySource serves a fixed waveform.
type MemorySource struct {
	SampleRate float64
	Samples    []float64
}

// Load returns the stored waveform.
func (m MemorySource) Load() (float64, []float64, error) {
	return m.SampleRate, m.Samples, nil
}
