package signalchain

// Stage identifies one of the intermediate signals a Pipeline keeps.
type Stage int

const (
	// StageOriginal is the normalized source signal.
	StageOriginal Stage = iota

	// StageSampled is the source resampled to the target rate (ADC output).
	StageSampled

	// StageFiltered is the sampled signal after the digital low-pass.
	StageFiltered

	// StageHeld is the filtered signal held back onto the source time grid (DAC output).
	StageHeld

	// StageReconstructed is the held signal after the reconstruction low-pass.
	StageReconstructed

	numStages
)

// AllStages lists every stage in processing order.
func AllStages() []Stage {
	return []Stage{StageOriginal, StageSampled, StageFiltered, StageHeld, StageReconstructed}
}

// String returns the stage name used in logs and reports.
func (s Stage) String() string {
	switch s {
	case StageOriginal:
		return "original"
	case StageSampled:
		return "sampled"
	case StageFiltered:
		return "filtered"
	case StageHeld:
		return "held"
	case StageReconstructed:
		return "reconstructed"
	default:
		return "unknown"
	}
}

// State is the position of a Pipeline in its single-pass run.
type State int

const (
	// StateNew means nothing has been processed yet.
	StateNew State = iota
	StateLoaded
	StateSampled
	StateFiltered
	StateHeld
	StateReconstructed
	StatePersisted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateLoaded:
		return "loaded"
	case StateSampled:
		return "sampled"
	case StateFiltered:
		return "filtered"
	case StateHeld:
		return "held"
	case StateReconstructed:
		return "reconstructed"
	case StatePersisted:
		return "persisted"
	default:
		return "unknown"
	}
}
