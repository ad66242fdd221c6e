package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agbru/bitexact/internal/crosscheck"
	apperrors "github.com/agbru/bitexact/internal/errors"
)

func runReporter(t *testing.T, numTasks int, updates ...crosscheck.ProgressUpdate) {
	t.Helper()
	reporter := &TUIProgressReporter{ref: &programRef{}} // nil program: Send is a no-op

	ch := make(chan crosscheck.ProgressUpdate, len(updates))
	for _, u := range updates {
		ch <- u
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, numTasks, nil)
	wg.Wait()
}

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		numTasks int
		updates  []crosscheck.ProgressUpdate
	}{
		{"single task", 1, []crosscheck.ProgressUpdate{{Index: 0, Value: 0.25}, {Index: 0, Value: 0.5}, {Index: 0, Value: 1}}},
		{"multiple tasks", 2, []crosscheck.ProgressUpdate{{Index: 0, Value: 0.25}, {Index: 1, Value: 0.5}, {Index: 1, Value: 1}}},
		{"zero tasks", 0, []crosscheck.ProgressUpdate{{Index: 0, Value: 0.5}}},
		{"empty channel", 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runReporter(t, tt.numTasks, tt.updates...)
		})
	}
}

func TestTUIResultPresenter_FormatDuration(t *testing.T) {
	t.Parallel()
	presenter := &TUIResultPresenter{ref: &programRef{}}
	for _, d := range []time.Duration{0, 500 * time.Microsecond, 42 * time.Millisecond, 3 * time.Minute} {
		if presenter.FormatDuration(d) == "" {
			t.Errorf("expected non-empty duration format for %v", d)
		}
	}
}

func TestTUIResultPresenter_PresentNoPanic(t *testing.T) {
	t.Parallel()
	presenter := &TUIResultPresenter{ref: &programRef{}}
	presenter.PresentComparisonTable([]crosscheck.CheckResult{
		{Check: crosscheck.KindMul, Oracle: "math/big", Digest: 1, Duration: time.Millisecond},
	}, nil)
	presenter.PresentMismatches([]crosscheck.Mismatch{
		{Check: crosscheck.KindMul, Oracle: "toom3", Reference: "math/big", Case: 3},
	}, nil)
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, apperrors.ExitSuccess},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"mismatch", apperrors.MismatchError{Check: "div", Oracle: "knuth"}, apperrors.ExitErrorMismatch},
		{"generic", errors.New("something failed"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			presenter := &TUIResultPresenter{ref: &programRef{}, timeout: time.Second}
			if got := presenter.HandleError(tt.err, time.Second, nil); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	t.Parallel()
	ref := &programRef{}

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref.Send(ProgressMsg{Value: float64(i) / 100})
		}()
	}
	wg.Wait()
}
