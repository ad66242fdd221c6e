package cli

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/bitexact/internal/cli/mocks"
	"github.com/agbru/bitexact/internal/crosscheck"
)

// Tests in this file swap the package-level newSpinner and must not run in
// parallel.

func withSpinner(t *testing.T, s Spinner) {
	t.Helper()
	orig := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return s }
	t.Cleanup(func() { newSpinner = orig })
}

func TestDisplayProgressReportsFinalAverage(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockSpinner(ctrl)

	var mu sync.Mutex
	var last string
	s.EXPECT().Start()
	s.EXPECT().UpdateSuffix(gomock.Any()).Do(func(suffix string) {
		mu.Lock()
		last = suffix
		mu.Unlock()
	}).MinTimes(2)
	s.EXPECT().Stop()
	withSpinner(t, s)

	updates := make(chan crosscheck.ProgressUpdate, 2)
	updates <- crosscheck.ProgressUpdate{Index: 0, Value: 0.5}
	updates <- crosscheck.ProgressUpdate{Index: 1, Value: 1}
	close(updates)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, updates, 2, io.Discard)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(last, "75.00%") {
		t.Errorf("final suffix = %q, want the 75%% average", last)
	}
}

func TestDisplayProgressWithoutTasksDrains(t *testing.T) {
	ctrl := gomock.NewController(t)
	withSpinner(t, mocks.NewMockSpinner(ctrl))

	updates := make(chan crosscheck.ProgressUpdate, 1)
	updates <- crosscheck.ProgressUpdate{Index: 0, Value: 1}
	close(updates)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, updates, 0, io.Discard)
	wg.Wait()
	if len(updates) != 0 {
		t.Error("pending updates were not drained")
	}
}

func TestRealSpinnerWrapsLibrary(t *testing.T) {
	s := newSpinner(spinner.WithWriter(io.Discard))
	s.UpdateSuffix(" checking")
	s.Start()
	time.Sleep(2 * ProgressRefreshRate / 10)
	s.Stop()
	if got := s.(*realSpinner).s.Suffix; got != " checking" {
		t.Errorf("suffix = %q", got)
	}
}
