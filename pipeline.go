package signalchain

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Source loads the waveform a Pipeline processes. Implementations own their I/O
// and any retry policy; the pipeline treats every error as fatal.
type Source interface {
	Load() (sampleRate float64, samples []float64, err error)
}

// Sink stores a named output signal at the given sample rate.
type Sink interface {
	Store(name string, sampleRate float64, samples []float64) error
}

// Config holds the acquisition chain parameters.
type Config struct {
	// TargetRate is the ADC/DAC sample rate in Hz.
	TargetRate float64

	// Order is the order of both Butterworth low-pass filters.
	Order int

	// CutoffHz is the cutoff of both low-pass filters. It must lie below the
	// Nyquist frequency of the target rate and of the source rate.
	CutoffHz float64
}

// Validate checks the parameters that do not depend on the source.
func (c *Config) Validate() error {
	if !(c.TargetRate > 0) || math.IsInf(c.TargetRate, 0) {
		return fmt.Errorf("%w: target rate must be positive, got %v", ErrInvalidParameter, c.TargetRate)
	}
	if c.Order < minFilterOrder {
		return fmt.Errorf("%w: filter order must be at least %d, got %d", ErrInvalidParameter, minFilterOrder, c.Order)
	}
	if !(c.CutoffHz > 0) {
		return fmt.Errorf("%w: cutoff must be positive, got %v Hz", ErrInvalidParameter, c.CutoffHz)
	}
	if nyquist := c.TargetRate / nyquistDivisor; c.CutoffHz >= nyquist {
		return fmt.Errorf("%w: cutoff %v Hz must be below the target Nyquist frequency %v Hz",
			ErrInvalidParameter, c.CutoffHz, nyquist)
	}
	return nil
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for stage progress. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// Pipeline runs the acquisition chain
//
//	load → resample → digital filter → hold → reconstruction filter → store
//
// in a single synchronous pass and keeps every intermediate signal so that
// observers such as plotters can inspect any stage without recomputing it.
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	config  Config
	logger  zerolog.Logger
	state   State
	signals [numStages]Signal

	digital        Coefficients
	reconstruction Coefficients
}

// New creates a pipeline for the given configuration.
func New(config Config, opts ...Option) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		config: config,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.config
}

// State returns how far the most recent run got.
func (p *Pipeline) State() State {
	return p.state
}

// Signal returns the signal produced by stage, and false if the last run did
// not reach it.
func (p *Pipeline) Signal(stage Stage) (Signal, bool) {
	if stage < 0 || stage >= numStages || p.state < stageState(stage) {
		return Signal{}, false
	}
	return p.signals[stage], true
}

// DigitalFilter returns the coefficients used at the target rate.
func (p *Pipeline) DigitalFilter() Coefficients {
	return p.digital
}

// ReconstructionFilter returns the coefficients used at the source rate.
func (p *Pipeline) ReconstructionFilter() Coefficients {
	return p.reconstruction
}

// Run loads from src, processes the signal and stores the held and the
// reconstructed signals through dst at the source sample rate.
func (p *Pipeline) Run(src Source, dst Sink) error {
	sampleRate, samples, err := src.Load()
	if err != nil {
		return fmt.Errorf("failed to load source: %w", err)
	}

	if err := p.Process(sampleRate, samples); err != nil {
		return err
	}

	held := p.signals[StageHeld]
	if err := dst.Store(OutputPreReconstruction, held.Rate(), held.samples); err != nil {
		return fmt.Errorf("failed to store %s output: %w", OutputPreReconstruction, err)
	}
	final := p.signals[StageReconstructed]
	if err := dst.Store(OutputFinal, final.Rate(), final.samples); err != nil {
		return fmt.Errorf("failed to store %s output: %w", OutputFinal, err)
	}

	p.state = StatePersisted
	p.logger.Debug().
		Str("state", p.state.String()).
		Msg("outputs stored")
	return nil
}

// Process runs every computing stage on a source sampled at sampleRate.
// Any previous run's signals are discarded first. On error the pipeline stays
// in the state of the last stage that completed.
func (p *Pipeline) Process(sampleRate float64, samples []float64) error {
	p.reset()

	source, err := NewUniform(sampleRate, samples)
	if err != nil {
		return err
	}
	if nyquist := sampleRate / nyquistDivisor; p.config.CutoffHz >= nyquist {
		return fmt.Errorf("%w: cutoff %v Hz must be below the source Nyquist frequency %v Hz",
			ErrInvalidParameter, p.config.CutoffHz, nyquist)
	}

	original, err := Normalize(source)
	if err != nil {
		return err
	}
	p.advance(StageOriginal, original)

	sampled, err := Resample(original, p.config.TargetRate)
	if err != nil {
		return fmt.Errorf("sampling stage: %w", err)
	}
	p.advance(StageSampled, sampled)

	p.digital, err = DesignLowpass(p.config.Order, NormalizedCutoff(p.config.CutoffHz, p.config.TargetRate))
	if err != nil {
		return fmt.Errorf("digital filter design: %w", err)
	}
	filteredSamples, err := Apply(p.digital, sampled.samples)
	if err != nil {
		return fmt.Errorf("digital filter stage: %w", err)
	}
	p.advance(StageFiltered, sampled.withSamples(filteredSamples))

	held, err := HoldSignal(original, p.signals[StageFiltered])
	if err != nil {
		return fmt.Errorf("hold stage: %w", err)
	}
	p.advance(StageHeld, held)

	p.reconstruction, err = DesignLowpass(p.config.Order, NormalizedCutoff(p.config.CutoffHz, sampleRate))
	if err != nil {
		return fmt.Errorf("reconstruction filter design: %w", err)
	}
	smoothed, err := Apply(p.reconstruction, held.samples)
	if err != nil {
		return fmt.Errorf("reconstruction filter stage: %w", err)
	}
	p.advance(StageReconstructed, held.withSamples(smoothed))

	return nil
}

func (p *Pipeline) reset() {
	p.state = StateNew
	p.signals = [numStages]Signal{}
	p.digital = Coefficients{}
	p.reconstruction = Coefficients{}
}

func (p *Pipeline) advance(stage Stage, s Signal) {
	p.signals[stage] = s
	p.state = stageState(stage)
	p.logger.Debug().
		Str("stage", stage.String()).
		Int("samples", s.Len()).
		Float64("rate", s.Rate()).
		Float64("peak", s.Peak()).
		Msg("stage complete")
}

// stageState maps a stage to the state reached once it has been produced.
func stageState(stage Stage) State {
	return State(int(stage) + int(StateLoaded))
}
