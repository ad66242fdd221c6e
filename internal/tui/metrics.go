package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bitexact/internal/format"
	"github.com/agbru/bitexact/internal/metrics"
)

// speedSmoothing is the weight of the previous estimate in the throughput
// moving average.
const speedSmoothing = 0.7

// MetricsModel is the runtime and throughput panel.
type MetricsModel struct {
	// baseline is the first memory sample of the run; GC counters are shown
	// relative to it.
	baseline   metrics.MemorySnapshot
	mem        metrics.MemorySnapshot
	sampled    bool
	goroutines int
	processRSS uint64

	totalCases   int
	speed        float64 // run fraction per second
	lastProgress float64
	lastUpdate   time.Time

	width, height int
}

// NewMetricsModel returns the panel of a run evaluating totalCases cases
// across all oracles.
func NewMetricsModel(totalCases int) MetricsModel {
	return MetricsModel{totalCases: totalCases, lastUpdate: time.Now()}
}

func (m *MetricsModel) SetSize(w, h int) { m.width, m.height = w, h }

// UpdateMemStats stores a runtime sample. The first sample becomes the
// baseline.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	if !m.sampled {
		m.baseline, m.sampled = msg.MemorySnapshot, true
	}
	m.mem = msg.MemorySnapshot
	m.goroutines = msg.NumGoroutine
}

func (m *MetricsModel) UpdateProcess(rss uint64) { m.processRSS = rss }

// UpdateProgress folds the run's overall progress into the throughput
// estimate. Samples less than 50ms apart, or without forward progress, do
// not change it.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= 0.05 {
		return
	}
	if dp := progress - m.lastProgress; dp > 0 {
		if instant := dp / dt; m.speed > 0 {
			m.speed = speedSmoothing*m.speed + (1-speedSmoothing)*instant
		} else {
			m.speed = instant
		}
	}
	m.lastProgress, m.lastUpdate = progress, now
}

// CasesPerSecond estimates throughput across every oracle.
func (m MetricsModel) CasesPerSecond() float64 {
	return m.speed * float64(m.totalCases)
}

func (m MetricsModel) View() string {
	run := m.mem.Since(m.baseline)
	cells := [][2]string{
		{"Heap:", format.FormatBytes(run.HeapAlloc) + " / " + format.FormatBytes(run.Sys)},
		{"GC:", fmt.Sprintf("%d (%.1fms)", run.NumGC, float64(run.PauseTotalNs)/1e6)},
		{"Cases/s:", fmt.Sprintf("%.1f", m.CasesPerSecond())},
		{"Goroutines:", fmt.Sprint(m.goroutines)},
		{"Cases:", fmt.Sprint(m.totalCases)},
		{"RSS:", format.FormatBytes(m.processRSS)},
	}
	colWidth := (m.width - 6) / 2
	lines := make([]string, 0, len(cells)/2)
	for i := 0; i < len(cells); i += 2 {
		lines = append(lines, formatMetricCol(cells[i][0], cells[i][1], colWidth)+formatMetricCol(cells[i+1][0], cells[i+1][1], colWidth))
	}
	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(strings.Join(lines, "\n"))
}

// formatMetricCol renders a label/value cell padded to colWidth visible
// columns.
func formatMetricCol(label, value string, colWidth int) string {
	cell := " " + metricLabelStyle.Render(fmt.Sprintf("%-11s", label)) + " " + metricValueStyle.Render(value)
	if pad := colWidth - lipgloss.Width(cell); pad > 0 {
		cell += strings.Repeat(" ", pad)
	}
	return cell
}
