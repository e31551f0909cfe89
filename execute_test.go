package smoke_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smoke "github.com/reugn/go-smoke"
)

// stubCase records which phases were invoked and returns configured results.
type stubCase struct {
	smoke.Base
	prepErr    error
	runResult  bool
	runErr     error
	cleanUpErr error
	panicIn    smoke.Phase
	panics     bool

	calls []string
}

func newStubCase(logger smoke.Logger) *stubCase {
	return &stubCase{Base: smoke.NewBase("99", "stub", logger)}
}

func (s *stubCase) Prep() error {
	s.calls = append(s.calls, "prep")
	if s.panics && s.panicIn == smoke.PhasePrep {
		panic("prep exploded")
	}
	return s.prepErr
}

func (s *stubCase) Run() (bool, error) {
	s.calls = append(s.calls, "run")
	if s.panics && s.panicIn == smoke.PhaseRun {
		panic("run exploded")
	}
	return s.runResult, s.runErr
}

func (s *stubCase) CleanUp() error {
	s.calls = append(s.calls, "clean_up")
	if s.panics && s.panicIn == smoke.PhaseCleanUp {
		panic("clean_up exploded")
	}
	return s.cleanUpErr
}

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), &buf
}

func TestExecute(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		configure func(*stubCase)
		want      smoke.Outcome
		wantCalls []string
		wantLog   string
	}{
		{
			name:      "run true",
			configure: func(s *stubCase) { s.runResult = true },
			want:      smoke.Passed,
			wantCalls: []string{"prep", "run", "clean_up"},
			wantLog:   "Test result: PASSED",
		},
		{
			name:      "run false",
			configure: func(s *stubCase) {},
			want:      smoke.Failed,
			wantCalls: []string{"prep", "run", "clean_up"},
			wantLog:   "Test result: FAILED",
		},
		{
			name:      "prep error skips run and clean_up",
			configure: func(s *stubCase) { s.prepErr = errBoom; s.runResult = true },
			want:      smoke.Interrupted,
			wantCalls: []string{"prep"},
			wantLog:   "phase=prep",
		},
		{
			name:      "run error skips clean_up",
			configure: func(s *stubCase) { s.runErr = errBoom },
			want:      smoke.Interrupted,
			wantCalls: []string{"prep", "run"},
			wantLog:   "phase=run",
		},
		{
			name:      "clean_up error overrides passed",
			configure: func(s *stubCase) { s.runResult = true; s.cleanUpErr = errBoom },
			want:      smoke.Interrupted,
			wantCalls: []string{"prep", "run", "clean_up"},
			wantLog:   "phase=clean_up",
		},
		{
			name:      "clean_up error overrides failed",
			configure: func(s *stubCase) { s.cleanUpErr = errBoom },
			want:      smoke.Interrupted,
			wantCalls: []string{"prep", "run", "clean_up"},
			wantLog:   "Test result: INTERRUPTED",
		},
		{
			name:      "panic in prep",
			configure: func(s *stubCase) { s.panics = true; s.panicIn = smoke.PhasePrep },
			want:      smoke.Interrupted,
			wantCalls: []string{"prep"},
			wantLog:   "prep exploded",
		},
		{
			name: "panic in run",
			configure: func(s *stubCase) {
				s.panics = true
				s.panicIn = smoke.PhaseRun
				s.runResult = true
			},
			want:      smoke.Interrupted,
			wantCalls: []string{"prep", "run"},
			wantLog:   "stack=",
		},
		{
			name:      "panic in clean_up",
			configure: func(s *stubCase) { s.panics = true; s.panicIn = smoke.PhaseCleanUp },
			want:      smoke.Interrupted,
			wantCalls: []string{"prep", "run", "clean_up"},
			wantLog:   "clean_up exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger()
			tc := newStubCase(logger)
			tt.configure(tc)

			var got smoke.Outcome
			require.NotPanics(t, func() { got = smoke.Execute(tc, logger) })

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, tc.calls)
			assert.Contains(t, buf.String(), "Test case 99: stub")
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}

func TestExecute_SingleResultLine(t *testing.T) {
	logger, buf := newBufferLogger()
	tc := newStubCase(logger)
	tc.runResult = true
	tc.cleanUpErr = errors.New("leftover")

	assert.Equal(t, smoke.Interrupted, smoke.Execute(tc, logger))
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Test result:")))
	assert.NotContains(t, buf.String(), "PASSED")
}

func TestExecute_NilLogger(t *testing.T) {
	tc := newStubCase(nil)
	tc.runResult = true

	assert.Equal(t, smoke.Passed, smoke.Execute(tc, nil))
}

func TestBase_DefaultPhases(t *testing.T) {
	logger, buf := newBufferLogger()
	base := smoke.NewBase("00", "base", logger)

	assert.Equal(t, "00", base.ID())
	assert.Equal(t, "base", base.Name())
	assert.NoError(t, base.Prep())
	passed, err := base.Run()
	assert.NoError(t, err)
	assert.False(t, passed)
	assert.NoError(t, base.CleanUp())

	for _, msg := range []string{"Prep started", "Run started", "Clean_up started"} {
		assert.Contains(t, buf.String(), msg)
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "Passed", smoke.Passed.String())
	assert.Equal(t, "Failed", smoke.Failed.String())
	assert.Equal(t, "Interrupted", smoke.Interrupted.String())
	assert.Equal(t, "Unknown", smoke.Outcome(0).String())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "prep", smoke.PhasePrep.String())
	assert.Equal(t, "run", smoke.PhaseRun.String())
	assert.Equal(t, "clean_up", smoke.PhaseCleanUp.String())
}
