package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/bitexact/internal/format"
	"github.com/agbru/bitexact/internal/natural"
	"github.com/agbru/bitexact/internal/ui"
)

// printCalibrationResults formats one sweep as a table, marking the chosen
// threshold.
func printCalibrationResults(out io.Writer, title string, results []calibrationResult, chosen int) {
	fmt.Fprintf(out, "\n--- %s ---\n", title)
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWords%s    │ %sBaseline%s    │ %sCandidate%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 10), strings.Repeat("─", 16), strings.Repeat("─", 25))
	for _, res := range results {
		baseline := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		candidate := baseline
		if res.Err == nil {
			baseline = formatSample(res.Baseline)
			candidate = formatSample(res.Candidate)
		}
		highlight := ""
		if res.Threshold == chosen && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Threshold)%s", ui.ColorGreen(), ui.ColorReset())
		}
		color := ui.ColorYellow()
		if res.candidateWins() {
			color = ui.ColorGreen()
		}
		fmt.Fprintf(tw, "  %s%-8d%s │ %s │ %s%s%s%s\n",
			ui.ColorCyan(), res.Threshold, ui.ColorReset(), baseline, color, candidate, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

func formatSample(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// printCalibrationOutput prints the thresholds a calibration settled on.
func printCalibrationOutput(t natural.Thresholds, out io.Writer) {
	fmt.Fprintf(out, "\n%sCalibration%s: karatsuba=%s%d%s, toom3=%s%d%s, burnikel-ziegler=%s%d%s words\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), t.KaratsubaMul, ui.ColorReset(),
		ui.ColorYellow(), t.ToomCook3Mul, ui.ColorReset(),
		ui.ColorYellow(), t.BurnikelZiegler, ui.ColorReset())
}
