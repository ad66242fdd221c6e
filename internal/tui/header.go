package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/bitexact/internal/format"
)

// HeaderModel is the top bar: title, workload and elapsed time.
type HeaderModel struct {
	title    string
	workload string
	started  time.Time
	stopped  time.Time
	width    int
}

// NewHeaderModel starts the elapsed clock. Development builds omit the
// version from the title.
func NewHeaderModel(version, check string, seed int64) HeaderModel {
	title := "bitexact monitor"
	if version != "" && version != "dev" {
		title += " " + version
	}
	return HeaderModel{
		title:    title,
		workload: fmt.Sprintf("check: %s  seed: %d", check, seed),
		started:  time.Now(),
	}
}

// SetDone stops the clock.
func (h *HeaderModel) SetDone() { h.stopped = time.Now() }

// Reset restarts the clock.
func (h *HeaderModel) Reset() { h.started, h.stopped = time.Now(), time.Time{} }

func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed is the time since start, or the run time once stopped.
func (h HeaderModel) Elapsed() time.Duration {
	if h.stopped.IsZero() {
		return time.Since(h.started)
	}
	return h.stopped.Sub(h.started)
}

func (h HeaderModel) View() string {
	line := strings.Join([]string{
		titleStyle.Render(h.title),
		versionStyle.Render(h.workload),
		elapsedStyle.Render("Elapsed: " + format.FormatExecutionDuration(h.Elapsed())),
	}, versionStyle.Render(" | "))
	return headerStyle.Width(h.width).Render(line)
}
