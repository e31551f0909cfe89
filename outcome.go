package smoke

// Outcome is the terminal result of a test case execution.
type Outcome int

const (
	// Passed indicates that the run phase reported success.
	Passed Outcome = iota + 1
	// Failed indicates that the run phase reported failure.
	Failed
	// Interrupted indicates that one of the phases returned an error or panicked.
	Interrupted
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Passed:
		return "Passed"
	case Failed:
		return "Failed"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}

// Phase identifies a step of the test case lifecycle.
type Phase int

const (
	PhasePrep Phase = iota
	PhaseRun
	PhaseCleanUp
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePrep:
		return "prep"
	case PhaseRun:
		return "run"
	case PhaseCleanUp:
		return "clean_up"
	default:
		return "unknown"
	}
}
