package smoke

// Logger is the leveled logging capability consumed by the lifecycle
// runner, the suite and the test cases. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// TestCase is a smoke test executed through the prep, run and clean_up phases.
type TestCase interface {
	// ID returns the short test case code.
	ID() string
	// Name returns the display name.
	Name() string
	// Prep checks the preconditions of the test case.
	Prep() error
	// Run performs the check. The boolean result decides between
	// Passed and Failed.
	Run() (bool, error)
	// CleanUp releases whatever Run left behind.
	CleanUp() error
}
