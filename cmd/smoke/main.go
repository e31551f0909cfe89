// Command smoke runs the self-test cases and logs their outcomes.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	smoke "github.com/reugn/go-smoke"
	"github.com/reugn/go-smoke/cases"
	"github.com/reugn/go-smoke/internal/config"
	"github.com/reugn/go-smoke/internal/logging"
	"github.com/reugn/go-smoke/internal/sysmonitor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	run(cfg, logger.With("run_id", uuid.NewString()))
}

// run executes the test cases in order and logs the report. Test outcomes
// never fail the process.
func run(cfg *config.Config, logger smoke.Logger) []smoke.Result {
	suite := smoke.NewSuite(logger, newTestCases(cfg, logger)...)
	results := suite.Run()
	suite.Report(results)
	return results
}

func newTestCases(cfg *config.Config, logger smoke.Logger) []smoke.TestCase {
	return []smoke.TestCase{
		cases.NewFileList(cfg.TargetDir, logger),
		cases.NewRandomFile(logger,
			cases.WithFileName(filepath.Join(cfg.WorkDir, cases.DefaultRandomFileName)),
			cases.WithMemoryReader(sysmonitor.AvailableMemory),
		),
	}
}
