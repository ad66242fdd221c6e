package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key help and the run status.
type FooterModel struct {
	keymap KeyMap
	width  int
	paused bool
	done   bool
	failed bool
}

// NewFooterModel creates a footer.
func NewFooterModel() FooterModel {
	return FooterModel{keymap: DefaultKeyMap()}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the paused status.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone toggles the done status.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the run as failed.
func (f *FooterModel) SetError(e bool) { f.failed = e }

func (f FooterModel) status() string {
	switch {
	case f.failed:
		return statusErrorStyle.Render("FAILED")
	case f.done:
		return statusDoneStyle.Render("DONE")
	case f.paused:
		return statusPausedStyle.Render("PAUSED")
	}
	return statusRunningStyle.Render("RUNNING")
}

// View renders the footer.
func (f FooterModel) View() string {
	var help []string
	for _, b := range f.keymap.footerBindings() {
		h := b.Help()
		help = append(help, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := " " + strings.Join(help, "  ")
	right := f.status() + " "
	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
