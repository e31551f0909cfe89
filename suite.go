package smoke

import (
	"fmt"
	"log/slog"
)

// Result pairs a test case with the outcome of its execution.
type Result struct {
	Case    TestCase
	Outcome Outcome
}

// Suite holds an ordered list of test cases and executes them one at a time.
type Suite struct {
	cases  []TestCase
	logger Logger
}

// NewSuite returns a new Suite for the given test cases.
// A nil logger falls back to slog.Default().
func NewSuite(logger Logger, cases ...TestCase) *Suite {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suite{
		cases:  append([]TestCase(nil), cases...),
		logger: logger,
	}
}

// Cases returns a copy of the test case list.
func (s *Suite) Cases() []TestCase {
	return append([]TestCase(nil), s.cases...)
}

// Run executes every test case in list order, each one to completion or
// interruption before the next starts.
func (s *Suite) Run() []Result {
	results := make([]Result, 0, len(s.cases))
	for _, tc := range s.cases {
		results = append(results, Result{
			Case:    tc,
			Outcome: Execute(tc, s.logger),
		})
	}
	return results
}

// Report logs a summary line per result, in the given order.
func (s *Suite) Report(results []Result) {
	s.logger.Info("Test results:")
	for _, r := range results {
		s.logger.Info(fmt.Sprintf("Test case %s - %s: %s",
			r.Case.ID(), r.Case.Name(), r.Outcome))
	}
}
