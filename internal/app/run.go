package app

import (
	"context"
	"io"

	"github.com/agbru/bitexact/internal/cli"
	"github.com/agbru/bitexact/internal/crosscheck"
	"github.com/agbru/bitexact/internal/logging"
	"github.com/agbru/bitexact/internal/metrics"
)

// runChecks executes every check in CLI mode and returns the exit code.
func (a *Application) runChecks(ctx context.Context, checks []crosscheck.Check, rec *metrics.Recorder, out io.Writer) int {
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(checks, out)
	}

	var progressReporter crosscheck.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressReporter = crosscheck.NullProgressReporter{}
		progressOut = io.Discard
	}

	mc := metrics.NewMemoryCollector()
	before := mc.Snapshot()
	results := crosscheck.ExecuteChecks(ctx, checks, progressReporter, progressOut,
		crosscheck.WithRecorder(rec), crosscheck.WithLogger(a.Logger))

	handler := cli.CLIResultPresenter{Timeout: a.Config.Timeout, Verbose: a.Config.Verbose}
	if a.Config.Quiet {
		exitCode := crosscheck.AnalyzeResults(results, cli.QuietPresenter{}, handler, rec, io.Discard)
		cli.DisplayQuietResult(out, results)
		return exitCode
	}

	exitCode := crosscheck.AnalyzeResults(results, handler, handler, rec, out)
	if a.Config.Verbose {
		cli.DisplayMemoryStats(mc.Snapshot().Since(before), out)
	}
	a.Logger.Debug("run finished",
		logging.Int("oracle_runs", len(results)),
		logging.Int("exit_code", exitCode))
	return exitCode
}
