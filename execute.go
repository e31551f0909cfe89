package smoke

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// panicError carries a value recovered from a panicking phase.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Execute runs the test case through prep, run and clean_up and maps the
// result to an Outcome. A phase error or panic stops the execution at that
// phase and yields Interrupted; the remaining phases are skipped. Execute
// never panics.
func Execute(tc TestCase, logger Logger) Outcome {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug(fmt.Sprintf("Test case %s: %s", tc.ID(), tc.Name()))

	if err := guard(tc.Prep); err != nil {
		return interrupt(logger, tc, PhasePrep, err)
	}

	var passed bool
	if err := guard(func() (err error) {
		passed, err = tc.Run()
		return err
	}); err != nil {
		return interrupt(logger, tc, PhaseRun, err)
	}

	if err := guard(tc.CleanUp); err != nil {
		return interrupt(logger, tc, PhaseCleanUp, err)
	}

	if passed {
		logger.Info("Test result: PASSED")
		return Passed
	}
	logger.Info("Test result: FAILED")
	return Failed
}

// guard invokes fn, converting a panic into a *panicError.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()
	return fn()
}

func interrupt(logger Logger, tc TestCase, phase Phase, err error) Outcome {
	args := []any{"id", tc.ID(), "phase", phase.String(), "error", err}
	var pe *panicError
	if errors.As(err, &pe) {
		args = append(args, "stack", string(pe.stack))
	}
	logger.Error(err.Error(), args...)
	logger.Info("Test result: INTERRUPTED")
	return Interrupted
}

// Base provides the identity of a test case and default phases that only
// log a debug trace. Concrete test cases embed it and override the phases.
type Base struct {
	id     string
	name   string
	logger Logger
}

// NewBase returns a new Base. A nil logger falls back to slog.Default().
func NewBase(id, name string, logger Logger) Base {
	if logger == nil {
		logger = slog.Default()
	}
	return Base{id: id, name: name, logger: logger}
}

// ID returns the test case code.
func (b Base) ID() string { return b.id }

// Name returns the test case display name.
func (b Base) Name() string { return b.name }

// Logger returns the logger the test case writes to.
func (b Base) Logger() Logger { return b.logger }

// Prep logs a debug trace.
func (b Base) Prep() error {
	b.logger.Debug("Prep started")
	return nil
}

// Run logs a debug trace and reports false.
func (b Base) Run() (bool, error) {
	b.logger.Debug("Run started")
	return false, nil
}

// CleanUp logs a debug trace.
func (b Base) CleanUp() error {
	b.logger.Debug("Clean_up started")
	return nil
}
