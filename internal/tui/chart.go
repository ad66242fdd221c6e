package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/bitexact/internal/format"
	"github.com/agbru/bitexact/internal/sysmon"
)

// sparklineLabelWidth is the width taken by "  CPU 100.0% " and the panel
// borders around a sparkline.
const sparklineLabelWidth = 17

// ChartModel plots overall progress and system load.
type ChartModel struct {
	progress        *sysmon.History
	cpuHistory      *sysmon.History
	memHistory      *sysmon.History
	averageProgress float64
	eta             time.Duration
	done            bool
	elapsed         time.Duration
	width           int
	height          int
}

// NewChartModel creates a chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		progress:   sysmon.NewHistory(64),
		cpuHistory: sysmon.NewHistory(32),
		memHistory: sysmon.NewHistory(32),
	}
}

// SetSize updates dimensions and resizes the histories to the plot width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.progress.Resize(max(w-4, 1) * 2)
	c.cpuHistory.Resize(max(w-sparklineLabelWidth, 1))
	c.memHistory.Resize(max(w-sparklineLabelWidth, 1))
}

// AddDataPoint records the progress of the whole run and its ETA.
func (c *ChartModel) AddDataPoint(avg float64, eta time.Duration) {
	c.averageProgress = avg
	c.eta = eta
	c.progress.Push(avg * 100)
}

// UpdateSysStats records a CPU and memory sample.
func (c *ChartModel) UpdateSysStats(cpuPct, memPct float64) {
	c.cpuHistory.Push(cpuPct)
	c.memHistory.Push(memPct)
}

// SetDone freezes the chart with the total elapsed time.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
	c.averageProgress = 1
}

// Reset clears every history.
func (c *ChartModel) Reset() {
	c.progress.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.elapsed = 0
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Progress Chart"))
	b.WriteString("\n")
	b.WriteString(c.renderProgressBar())

	showSparklines := c.height >= 10
	plotRows := c.height - 2 - 2
	if showSparklines {
		plotRows -= 2
	}
	for _, line := range RenderBrailleChart(c.progress.Values(), max(c.width-4, 1), plotRows) {
		b.WriteString("\n  ")
		b.WriteString(chartBarStyle.Render(line))
	}

	if showSparklines {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s %s", metricLabelStyle.Render("CPU"),
			metricValueStyle.Render(fmt.Sprintf("%5.1f%%", c.cpuHistory.Last())),
			cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Values()))))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s %s", metricLabelStyle.Render("MEM"),
			metricValueStyle.Render(fmt.Sprintf("%5.1f%%", c.memHistory.Last())),
			memSparklineStyle.Render(RenderSparkline(c.memHistory.Values()))))
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}

// renderProgressBar renders the overall bar followed by the ETA, or the
// total time once done.
func (c ChartModel) renderProgressBar() string {
	barWidth := max(c.width-30, 10)
	suffix := "ETA: " + format.FormatETA(c.eta)
	if c.done {
		suffix = "Done in " + format.FormatExecutionDuration(c.elapsed)
	}
	return fmt.Sprintf("  %s %s %s",
		renderBar(c.averageProgress, barWidth),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", c.averageProgress*100)),
		metricLabelStyle.Render(suffix))
}
