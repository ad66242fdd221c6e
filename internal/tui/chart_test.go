package tui

import (
	"strings"
	"testing"
	"time"
)

func TestChartModel_AddDataPoint(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.SetSize(50, 10)

	chart.AddDataPoint(0.25, 30*time.Second)
	chart.AddDataPoint(0.50, 20*time.Second)
	chart.AddDataPoint(0.75, 10*time.Second)

	if chart.averageProgress != 0.75 || chart.eta != 10*time.Second {
		t.Errorf("got average %f eta %v", chart.averageProgress, chart.eta)
	}
	if chart.progress.Len() != 3 || chart.progress.Last() != 75 {
		t.Errorf("progress history = %v", chart.progress.Values())
	}
}

func TestChartModel_Reset(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.AddDataPoint(0.5, 10*time.Second)
	chart.UpdateSysStats(25.0, 60.0)
	chart.SetDone(time.Second)

	chart.Reset()

	if chart.averageProgress != 0 || chart.done {
		t.Errorf("chart not reset: average %f done %v", chart.averageProgress, chart.done)
	}
	if chart.progress.Len() != 0 || chart.cpuHistory.Len() != 0 || chart.memHistory.Len() != 0 {
		t.Error("expected every history to be empty after reset")
	}
}

func TestChartModel_RenderProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		progress float64
		want     []string
	}{
		{"zero", 0, []string{"░", "0.0%", "ETA:"}},
		{"half", 0.5, []string{"█", "░", "50.0%"}},
		{"full", 1, []string{"█", "100.0%"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chart := NewChartModel()
			chart.SetSize(50, 10)
			chart.AddDataPoint(tt.progress, 10*time.Second)
			bar := chart.renderProgressBar()
			for _, w := range tt.want {
				if !strings.Contains(bar, w) {
					t.Errorf("progress bar %q missing %q", bar, w)
				}
			}
		})
	}
}

func TestChartModel_DoneShowsTotal(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.SetSize(50, 10)
	chart.AddDataPoint(0.4, time.Minute)
	chart.SetDone(2 * time.Second)

	bar := chart.renderProgressBar()
	if !strings.Contains(bar, "Done in") || strings.Contains(bar, "ETA:") {
		t.Errorf("done bar = %q", bar)
	}
	if !strings.Contains(bar, "100.0%") {
		t.Errorf("done bar should be full: %q", bar)
	}
}

func TestChartModel_View(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.SetSize(50, 15)
	chart.AddDataPoint(0.3, 20*time.Second)
	chart.AddDataPoint(0.65, 5*time.Second)
	chart.UpdateSysStats(50.0, 75.0)

	view := chart.View()
	for _, want := range []string{"Progress Chart", "ETA:", "65.0%", "CPU", "MEM"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestChartModel_View_HidesSparklines_SmallHeight(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.SetSize(50, 8)
	chart.UpdateSysStats(50.0, 75.0)

	if strings.Contains(chart.View(), "CPU") {
		t.Error("expected sparklines to be hidden for small height")
	}
}

func TestChartModel_SetSize_ResizesHistories(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.SetSize(50, 15)

	if want := 50 - sparklineLabelWidth; chart.cpuHistory.Cap() != want || chart.memHistory.Cap() != want {
		t.Errorf("sparkline caps = %d/%d, want %d", chart.cpuHistory.Cap(), chart.memHistory.Cap(), want)
	}
	if want := (50 - 4) * 2; chart.progress.Cap() != want {
		t.Errorf("progress cap = %d, want %d", chart.progress.Cap(), want)
	}
}
