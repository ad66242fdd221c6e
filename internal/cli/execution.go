package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/bitexact/internal/config"
	"github.com/agbru/bitexact/internal/crosscheck"
	"github.com/agbru/bitexact/internal/ui"
)

// PrintExecutionConfig displays the workload, environment and engine
// thresholds of the run.
//
// Parameters:
//   - cfg: The resolved application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	t := cfg.ToThresholds()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Cross-checking %s%s%s on %s%d%s operand pairs of %s%d%s words (divisor %d words), seed %s%d%s, timeout %s%s%s.\n",
		ui.ColorMagenta(), cfg.Check, ui.ColorReset(),
		ui.ColorCyan(), cfg.Iterations, ui.ColorReset(),
		ui.ColorCyan(), cfg.Words, ui.ColorReset(), cfg.DivisorWords,
		ui.ColorCyan(), cfg.Seed, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, %s/%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "Engine thresholds: Karatsuba=%s%d%s, Toom-3=%s%d%s, Burnikel-Ziegler=%s%d%s (offset %d) words.\n",
		ui.ColorCyan(), t.KaratsubaMul, ui.ColorReset(),
		ui.ColorCyan(), t.ToomCook3Mul, ui.ColorReset(),
		ui.ColorCyan(), t.BurnikelZiegler, ui.ColorReset(), t.BurnikelZieglerOffset)
}

// PrintExecutionMode lists the checks about to run and their oracles.
//
// Parameters:
//   - checks: The checks that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(checks []crosscheck.Check, out io.Writer) {
	tasks := 0
	for _, c := range checks {
		tasks += len(c.Oracles)
	}
	fmt.Fprintf(out, "Execution mode: %s%d%s check(s), %s%d%s oracle run(s) in parallel.\n",
		ui.ColorGreen(), len(checks), ui.ColorReset(), ui.ColorGreen(), tasks, ui.ColorReset())
	for _, c := range checks {
		names := make([]string, len(c.Oracles))
		for i, o := range c.Oracles {
			names[i] = o.Name()
		}
		fmt.Fprintf(out, "  %-6s %s\n", c.Kind, strings.Join(names, ", "))
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
