package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bitexact/internal/crosscheck"
	"github.com/agbru/bitexact/internal/format"
)

// taskStatus is the lifecycle of one oracle run.
type taskStatus int

const (
	taskPending taskStatus = iota
	taskRunning
	taskAgrees
	taskMismatch
	taskFailed
	taskCanceled
)

func (s taskStatus) String() string {
	switch s {
	case taskRunning:
		return "running"
	case taskAgrees:
		return "agrees"
	case taskMismatch:
		return "MISMATCH"
	case taskFailed:
		return "failed"
	case taskCanceled:
		return "canceled"
	}
	return "pending"
}

// taskRow is one (check, oracle) line of the table. Rows are in the order
// ExecuteChecks indexes its progress updates.
type taskRow struct {
	check    crosscheck.Kind
	oracle   string
	progress float64
	status   taskStatus
	duration time.Duration
	digest   uint64
	caseIdx  int
}

// Column widths shared between the table header and its rows.
const (
	colWidthCheck    = 6
	colWidthOracle   = 18
	colWidthPct      = 8
	colWidthDur      = 10
	colWidthStatus   = 9
	minProgressWidth = 8
	tableChrome      = 2 + colWidthCheck + 1 + colWidthOracle + 2 + 2 + colWidthPct + 1 + colWidthDur + 1 + colWidthStatus
)

// OraclesModel is the scrollable per-oracle table.
type OraclesModel struct {
	rows   []taskRow
	offset int
	width  int
	height int
	keymap KeyMap
}

// NewOraclesModel creates one pending row per oracle of every check.
func NewOraclesModel(checks []crosscheck.Check) OraclesModel {
	var rows []taskRow
	for _, c := range checks {
		for _, o := range c.Oracles {
			rows = append(rows, taskRow{check: c.Kind, oracle: o.Name(), caseIdx: -1})
		}
	}
	return OraclesModel{rows: rows, keymap: DefaultKeyMap()}
}

// SetSize updates the panel dimensions.
func (m *OraclesModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampOffset()
}

// SetProgress records the progress of task idx. Out-of-range indexes are
// ignored.
func (m *OraclesModel) SetProgress(idx int, v float64) {
	if idx < 0 || idx >= len(m.rows) {
		return
	}
	r := &m.rows[idx]
	r.progress = v
	if r.status == taskPending {
		r.status = taskRunning
	}
}

// ApplyResults fills in durations and final statuses. Results are matched
// to rows by check and oracle.
func (m *OraclesModel) ApplyResults(results []crosscheck.CheckResult) {
	for _, res := range results {
		r := m.find(res.Check, res.Oracle)
		if r == nil {
			continue
		}
		r.duration = res.Duration
		r.digest = res.Digest
		if res.Err != nil {
			r.status = taskFailed
			continue
		}
		r.progress = 1
		r.status = taskAgrees
	}
}

// ApplyMismatches flags the disagreeing oracles.
func (m *OraclesModel) ApplyMismatches(mismatches []crosscheck.Mismatch) {
	for _, mm := range mismatches {
		if r := m.find(mm.Check, mm.Oracle); r != nil {
			r.status = taskMismatch
			r.caseIdx = mm.Case
		}
	}
}

// MarkCanceled flags every unfinished row as canceled.
func (m *OraclesModel) MarkCanceled() {
	for i := range m.rows {
		if m.rows[i].status == taskPending || m.rows[i].status == taskRunning {
			m.rows[i].status = taskCanceled
		}
	}
}

// Reset returns every row to pending.
func (m *OraclesModel) Reset() {
	for i := range m.rows {
		m.rows[i] = taskRow{check: m.rows[i].check, oracle: m.rows[i].oracle, caseIdx: -1}
	}
	m.offset = 0
}

// Counts returns how many rows agree, mismatch and failed.
func (m OraclesModel) Counts() (agrees, mismatches, failed int) {
	for _, r := range m.rows {
		switch r.status {
		case taskAgrees:
			agrees++
		case taskMismatch:
			mismatches++
		case taskFailed:
			failed++
		}
	}
	return agrees, mismatches, failed
}

func (m *OraclesModel) find(check crosscheck.Kind, oracle string) *taskRow {
	for i := range m.rows {
		if m.rows[i].check == check && m.rows[i].oracle == oracle {
			return &m.rows[i]
		}
	}
	return nil
}

// visibleRows is the number of table rows that fit below the title and
// column header.
func (m OraclesModel) visibleRows() int {
	return max(m.height-2-3, 1)
}

func (m *OraclesModel) clampOffset() {
	m.offset = min(max(m.offset, 0), max(len(m.rows)-m.visibleRows(), 0))
}

// Update scrolls the table.
func (m *OraclesModel) Update(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.offset--
	case key.Matches(msg, m.keymap.Down):
		m.offset++
	case key.Matches(msg, m.keymap.PageUp):
		m.offset -= m.visibleRows()
	case key.Matches(msg, m.keymap.PageDown):
		m.offset += m.visibleRows()
	}
	m.clampOffset()
}

// View renders the panel at its configured size.
func (m OraclesModel) View() string {
	barWidth := max(m.width-2-tableChrome-1, minProgressWidth)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf(" Oracles (%d)", len(m.rows))))
	b.WriteString("\n")
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("  %-*s %-*s %-*s %*s %*s %-*s",
		colWidthCheck, "Check", colWidthOracle, "Oracle", barWidth+2, "Progress",
		colWidthPct, "%", colWidthDur, "Time", colWidthStatus, "Status")))

	end := min(m.offset+m.visibleRows(), len(m.rows))
	for _, r := range m.rows[m.offset:end] {
		b.WriteString("\n")
		b.WriteString(renderTaskRow(r, barWidth))
	}
	if len(m.rows) > m.visibleRows() {
		b.WriteString("\n")
		b.WriteString(metricLabelStyle.Render(fmt.Sprintf("  rows %d-%d of %d", m.offset+1, end, len(m.rows))))
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(b.String())
}

func renderTaskRow(r taskRow, barWidth int) string {
	dur := "-"
	if r.duration > 0 {
		dur = format.FormatExecutionDuration(r.duration)
	}
	return fmt.Sprintf("  %s %s [%s] %s %s %s",
		checkNameStyle.Render(fmt.Sprintf("%-*s", colWidthCheck, r.check)),
		oracleNameStyle.Render(fmt.Sprintf("%-*s", colWidthOracle, truncate(r.oracle, colWidthOracle))),
		renderBar(r.progress, barWidth),
		metricValueStyle.Render(fmt.Sprintf("%*.1f%%", colWidthPct-1, r.progress*100)),
		fmt.Sprintf("%*s", colWidthDur, dur),
		statusStyle(r.status).Render(fmt.Sprintf("%-*s", colWidthStatus, r.status)))
}

func statusStyle(s taskStatus) lipgloss.Style {
	switch s {
	case taskAgrees:
		return agreeStyle
	case taskMismatch, taskFailed:
		return mismatchStyle
	case taskCanceled:
		return statusPausedStyle
	}
	return metricLabelStyle
}

// renderBar draws a filled/empty bar of the given width.
func renderBar(progress float64, width int) string {
	filled := min(max(int(progress*float64(width)), 0), width)
	return chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
