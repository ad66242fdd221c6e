package tui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"all zero", []float64{0, 0, 0}, "▁▁▁"},
		{"all max", []float64{100, 100}, "██"},
		{"gradient", []float64{0, 15, 29, 43, 58, 72, 86, 100}, "▁▂▃▄▅▆▇█"},
		{"clamping", []float64{-20, 150}, "▁█"},
		{"mid value", []float64{50}, "▄"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestRenderBrailleChart_Dimensions(t *testing.T) {
	t.Parallel()
	lines := RenderBrailleChart([]float64{10, 50, 90}, 6, 3)
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if n := utf8.RuneCountInString(l); n != 6 {
			t.Errorf("row %d has %d cells, want 6", i, n)
		}
	}
}

func TestRenderBrailleChart_Degenerate(t *testing.T) {
	t.Parallel()
	if RenderBrailleChart(nil, 10, 2) != nil {
		t.Error("expected nil for no values")
	}
	if RenderBrailleChart([]float64{1}, 0, 2) != nil {
		t.Error("expected nil for zero width")
	}
	if RenderBrailleChart([]float64{1}, 2, 0) != nil {
		t.Error("expected nil for zero rows")
	}
}

func TestRenderBrailleChart_Extremes(t *testing.T) {
	t.Parallel()
	// One cell, two samples: 100 lands on the top dot row, 0 on the bottom.
	lines := RenderBrailleChart([]float64{100, 0}, 1, 1)
	want := string(rune(0x2800 | 0x01 | 0x80))
	if lines[0] != want {
		t.Errorf("got %q, want %q", lines[0], want)
	}
}

func TestRenderBrailleChart_DropsOldest(t *testing.T) {
	t.Parallel()
	values := make([]float64, 100)
	lines := RenderBrailleChart(values, 4, 1)
	if strings.ContainsRune(lines[0], 0x2800) {
		t.Errorf("expected every cell to be plotted, got %q", lines[0])
	}
}
