//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bitexact/internal/crosscheck"
	"github.com/agbru/bitexact/internal/format"
)

// FormatExecutionDuration renders d for the report tables.
func FormatExecutionDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

const (
	// DigestWidth is the number of hex digits of a digest in the
	// comparison table.
	DigestWidth = 16
	// ProgressRefreshRate is both the spinner frame interval and the
	// progress bar redraw interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the progress bar in runes.
	ProgressBarWidth = 40
)

// Spinner is the terminal activity indicator DisplayProgress drives.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix replaces the text drawn after the spinner frame.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner is swapped out by tests.
var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// DisplayProgress draws a spinner followed by the averaged progress bar and
// ETA of numTasks (check, oracle) tasks. It consumes progressChan until it
// is closed, draws the final state and calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan crosscheck.ProgressUpdate, numTasks int, out io.Writer) {
	defer wg.Done()
	agg := crosscheck.NewProgressAggregator(numTasks)
	if agg == nil {
		crosscheck.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(" " + format.FormatProgressBarWithETA(agg.CalculateAverage(), 0, ProgressBarWidth))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(" " + format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth))
		}
	}
}
