// Package ui holds the color themes shared by the CLI report and the TUI
// dashboard. ANSI themes back the Color* helpers used in plain terminal
// output; TUITheme carries the lipgloss palette of the dashboard.
package ui
