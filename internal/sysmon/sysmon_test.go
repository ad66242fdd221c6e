package sysmon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
	if s.ProcessRSS != 0 || s.NumThreads != 0 {
		t.Errorf("package-level Sample must not report process figures: %+v", s)
	}
}

func TestSampler_ReportsProcess(t *testing.T) {
	s := NewSampler().Sample()
	if s.MemPercent == 0 {
		t.Error("expected non-zero MemPercent on a running system")
	}
	if s.ProcessRSS == 0 {
		t.Error("expected a non-zero resident set for the test process")
	}
	if s.NumThreads <= 0 {
		t.Errorf("NumThreads = %d", s.NumThreads)
	}
}

func TestHistory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		capacity int
		push     []float64
		resize   int
		want     []float64
		wantLast float64
	}{
		{"partial", 3, []float64{1, 2}, 0, []float64{1, 2}, 2},
		{"overflow drops oldest", 3, []float64{1, 2, 3, 4}, 0, []float64{2, 3, 4}, 4},
		{"zero capacity holds one", 0, []float64{41, 42}, 0, []float64{42}, 42},
		{"grow keeps all", 3, []float64{1, 2, 3}, 5, []float64{1, 2, 3}, 3},
		{"shrink keeps recent", 5, []float64{1, 2, 3, 4, 5}, 3, []float64{3, 4, 5}, 5},
		{"same capacity is a no-op", 3, []float64{1, 2}, 3, []float64{1, 2}, 2},
		{"empty", 4, nil, 0, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHistory(tt.capacity)
			for _, v := range tt.push {
				h.Push(v)
			}
			if tt.resize > 0 {
				h.Resize(tt.resize)
				if h.Cap() != tt.resize {
					t.Errorf("Cap() = %d, want %d", h.Cap(), tt.resize)
				}
			}
			if diff := cmp.Diff(tt.want, h.Values()); diff != "" {
				t.Errorf("Values() (-want +got):\n%s", diff)
			}
			if h.Last() != tt.wantLast {
				t.Errorf("Last() = %v, want %v", h.Last(), tt.wantLast)
			}
			if h.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", h.Len(), len(tt.want))
			}
		})
	}
}

func TestHistoryReset(t *testing.T) {
	t.Parallel()
	h := NewHistory(4)
	h.Push(1)
	h.Push(2)
	h.Reset()
	if h.Len() != 0 || h.Values() != nil {
		t.Errorf("history not empty after Reset: %v", h.Values())
	}
}
