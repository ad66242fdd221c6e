// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayQuietResult], [DisplayProgress], [DisplayMemoryStats].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatExecutionDuration].

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/bitexact/internal/crosscheck"
)

// FormatQuietResult formats the verdict of a run as a single line suitable
// for scripting: "ok", "mismatch" or "error", then the number of oracle
// runs and the total time, then the first offending check/oracle if any.
func FormatQuietResult(results []crosscheck.CheckResult) string {
	var total time.Duration
	for _, r := range results {
		total += r.Duration
	}
	if mismatches := crosscheck.FindMismatches(results); len(mismatches) > 0 {
		m := mismatches[0]
		return fmt.Sprintf("mismatch %d %s %s/%s case=%d", len(results), total.Round(time.Microsecond), m.Check, m.Oracle, m.Case)
	}
	for _, r := range results {
		if r.Err != nil {
			return fmt.Sprintf("error %d %s %s/%s", len(results), total.Round(time.Microsecond), r.Check, r.Oracle)
		}
	}
	if len(results) == 0 {
		return "error 0 0s"
	}
	return fmt.Sprintf("ok %d %s", len(results), total.Round(time.Microsecond))
}

// DisplayQuietResult prints the verdict line of FormatQuietResult.
func DisplayQuietResult(out io.Writer, results []crosscheck.CheckResult) {
	fmt.Fprintln(out, FormatQuietResult(results))
}

// QuietPresenter implements crosscheck.ResultPresenter without output. The
// quiet mode prints a single verdict line instead.
type QuietPresenter struct{}

var _ crosscheck.ResultPresenter = QuietPresenter{}

func (QuietPresenter) PresentComparisonTable([]crosscheck.CheckResult, io.Writer) {}
func (QuietPresenter) PresentMismatches([]crosscheck.Mismatch, io.Writer)        {}
