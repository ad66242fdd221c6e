package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/bitexact/internal/crosscheck"
	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/format"
	"github.com/agbru/bitexact/internal/metrics"
	"github.com/agbru/bitexact/internal/ui"
)

// CLIProgressReporter implements crosscheck.ProgressReporter with the
// spinner and progress bar of DisplayProgress.
type CLIProgressReporter struct{}

var _ crosscheck.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for running oracles.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan crosscheck.ProgressUpdate, numTasks int, out io.Writer) {
	DisplayProgress(wg, progressChan, numTasks, out)
}

// CLIResultPresenter renders run results as colorized terminal tables.
// Timeout is reported when a run fails on its deadline.
type CLIResultPresenter struct {
	Timeout time.Duration
	// Verbose adds the per-oracle digest column.
	Verbose bool
}

var (
	_ crosscheck.ResultPresenter = CLIResultPresenter{}
	_ crosscheck.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays one row per (check, oracle) result.
// Uses manual padding to correctly handle ANSI color codes.
func (p CLIResultPresenter) PresentComparisonTable(results []crosscheck.CheckResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxOracleLen := len("Oracle")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxOracleLen = max(maxOracleLen, len(res.Oracle))
		maxDurationLen = max(maxDurationLen, len(p.FormatDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sCheck%s%s  %sOracle%s%s   %sDuration%s%s   ",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", 6-len("Check")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxOracleLen-len("Oracle")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")))
	if p.Verbose {
		fmt.Fprintf(out, "%sDigest%s%s   ", ui.ColorUnderline(), ui.ColorReset(), padRight("", DigestWidth-len("Digest")))
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	mismatched := make(map[string]bool)
	for _, m := range crosscheck.FindMismatches(results) {
		mismatched[string(m.Check)+"/"+m.Oracle] = true
	}

	for _, res := range results {
		var status string
		switch {
		case res.Err != nil:
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		case mismatched[string(res.Check)+"/"+res.Oracle]:
			status = fmt.Sprintf("%s❌ Mismatch%s", ui.ColorRed(), ui.ColorReset())
		default:
			status = fmt.Sprintf("%s✅ Agrees%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := p.FormatDuration(res.Duration)
		fmt.Fprintf(out, "%-6s  %s%s%s%s   %s%s%s%s   ",
			res.Check,
			ui.ColorBlue(), res.Oracle, ui.ColorReset(), padRight("", maxOracleLen-len(res.Oracle)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)))
		if p.Verbose {
			fmt.Fprintf(out, "%0*x   ", DigestWidth, res.Digest)
		}
		fmt.Fprintln(out, status)
	}
}

// PresentMismatches details every oracle that disagrees with its check's
// reference, including the first differing case so it can be replayed
// with the same seed.
func (CLIResultPresenter) PresentMismatches(mismatches []crosscheck.Mismatch, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Mismatches ---%s\n", ui.ColorRed(), ui.ColorReset())
	for _, m := range mismatches {
		where := fmt.Sprintf("first differing case #%d", m.Case)
		if m.Case < 0 {
			where = "different number of cases"
		}
		fmt.Fprintf(out, "  %s%s%s: %s%s%s disagrees with %s (%s)\n",
			ui.ColorBold(), m.Check, ui.ColorReset(),
			ui.ColorRed(), m.Oracle, ui.ColorReset(),
			m.Reference, where)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// HandleError handles run errors and returns an appropriate exit code.
func (p CLIResultPresenter) HandleError(err error, _ time.Duration, out io.Writer) int {
	return apperrors.HandleCheckError(err, p.Timeout, out)
}

// DisplayMemoryStats shows the memory used by a run.
func DisplayMemoryStats(s metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(s.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(s.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", s.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(s.PauseTotalNs)/1e6)
}
