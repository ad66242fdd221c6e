package ui

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the ANSI palette of plain terminal output. Empty fields print
// nothing, which is how the no-color theme disables styling.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// TUITheme is the lipgloss palette of the dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

// fg256 returns the escape sequence selecting foreground color n of the
// 256-color table.
func fg256(n int) string { return fmt.Sprintf("\033[38;5;%dm", n) }

// ansiTheme builds a Theme from 256-color codes in the order primary,
// secondary, success, warning, error, info.
func ansiTheme(name string, primary, secondary, success, warning, failure, info int) Theme {
	return Theme{
		Name:      name,
		Primary:   fg256(primary),
		Secondary: fg256(secondary),
		Success:   fg256(success),
		Warning:   fg256(warning),
		Error:     fg256(failure),
		Info:      fg256(info),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}
}

var (
	DarkTheme    = ansiTheme("dark", 39, 245, 82, 220, 196, 141)
	LightTheme   = ansiTheme("light", 27, 240, 28, 130, 124, 54)
	NoColorTheme = Theme{Name: "none"}

	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#0B0F14"),
		Text:    lipgloss.Color("#D8DEE9"),
		Border:  lipgloss.Color("#3B82F6"),
		Accent:  lipgloss.Color("#60A5FA"),
		Success: lipgloss.Color("#34D399"),
		Warning: lipgloss.Color("#FBBF24"),
		Error:   lipgloss.Color("#F87171"),
		Dim:     lipgloss.Color("#6B7280"),
		Info:    lipgloss.Color("#A78BFA"),
	}

	LightTUITheme = TUITheme{
		Bg:      lipgloss.Color("#FAFAFA"),
		Text:    lipgloss.Color("#1F2937"),
		Border:  lipgloss.Color("#1D4ED8"),
		Accent:  lipgloss.Color("#1E40AF"),
		Success: lipgloss.Color("#047857"),
		Warning: lipgloss.Color("#B45309"),
		Error:   lipgloss.Color("#B91C1C"),
		Dim:     lipgloss.Color("#9CA3AF"),
		Info:    lipgloss.Color("#6D28D9"),
	}

	NoColorTUITheme = TUITheme{
		Bg: lipgloss.NoColor{}, Text: lipgloss.NoColor{}, Border: lipgloss.NoColor{},
		Accent: lipgloss.NoColor{}, Success: lipgloss.NoColor{}, Warning: lipgloss.NoColor{},
		Error: lipgloss.NoColor{}, Dim: lipgloss.NoColor{}, Info: lipgloss.NoColor{},
	}
)

// themes maps a theme name to its terminal and dashboard palettes.
var themes = map[string]struct {
	ansi Theme
	tui  TUITheme
}{
	DarkTheme.Name:    {DarkTheme, DarkTUITheme},
	LightTheme.Name:   {LightTheme, LightTUITheme},
	NoColorTheme.Name: {NoColorTheme, NoColorTUITheme},
}

var active atomic.Pointer[Theme]

func init() { active.Store(&DarkTheme) }

// GetCurrentTheme returns the active ANSI theme.
func GetCurrentTheme() Theme { return *active.Load() }

// SetCurrentTheme activates t. Tests use it to restore the previous theme.
func SetCurrentTheme(t Theme) { active.Store(&t) }

// GetCurrentTUITheme returns the dashboard palette paired with the active
// theme. Themes installed through SetCurrentTheme under an unknown name get
// the dark palette.
func GetCurrentTUITheme() TUITheme {
	if p, ok := themes[GetCurrentTheme().Name]; ok {
		return p.tui
	}
	return DarkTUITheme
}

// SetTheme activates a theme by name ("dark", "light" or "none"). Unknown
// names select the dark theme.
func SetTheme(name string) {
	p, ok := themes[name]
	if !ok {
		p = themes[DarkTheme.Name]
	}
	SetCurrentTheme(p.ansi)
}

// InitTheme selects the startup theme. Colors are off when noColor is set or
// when NO_COLOR is present in the environment, whatever its value
// (https://no-color.org/).
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetTheme(NoColorTheme.Name)
		return
	}
	SetTheme(DarkTheme.Name)
}
