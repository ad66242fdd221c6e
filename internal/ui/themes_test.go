package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// Theme tests mutate package state and do not run in parallel.

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"neon", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q): active theme %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitThemeNoColor(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("no-color theme must not emit escape codes")
	}
	if got := Colorize(ColorGreen(), "ok"); got != "ok" {
		t.Errorf("Colorize without colors = %q", got)
	}
	if _, ok := GetCurrentTUITheme().Accent.(lipgloss.NoColor); !ok {
		t.Error("TUI theme must follow the no-color setting")
	}
}

func TestInitThemeEnv(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR ignored, theme = %q", GetCurrentTheme().Name)
	}
}

func TestColorize(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	got := Colorize(ColorGreen(), "ok")
	if want := DarkTheme.Success + "ok" + DarkTheme.Reset; got != want {
		t.Errorf("Colorize = %q, want %q", got, want)
	}
}

func TestTUIThemeFollowsActiveTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		theme string
		want  TUITheme
	}{
		{"dark", DarkTUITheme},
		{"light", LightTUITheme},
		{"none", NoColorTUITheme},
	}
	for _, tt := range tests {
		SetTheme(tt.theme)
		if got := GetCurrentTUITheme(); got != tt.want {
			t.Errorf("theme %q: unexpected dashboard palette %+v", tt.theme, got)
		}
	}

	SetCurrentTheme(Theme{Name: "custom"})
	if GetCurrentTUITheme() != DarkTUITheme {
		t.Error("unknown theme names must fall back to the dark palette")
	}
}
