package crosscheck

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bitexact/internal/format"
)

// ProgressUpdate reports the fraction of cases one task has completed.
// Index identifies the task in the order ExecuteChecks returns results.
type ProgressUpdate struct {
	Index int
	Value float64
}

// ProgressReporter displays progress updates. DisplayProgress runs in its
// own goroutine, consumes the channel until it is closed and then calls
// wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer) {
	f(wg, progressChan, numTasks, out)
}

// NullProgressReporter drains the channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}

// ProgressAggregator turns per-task updates into an overall progress and
// ETA. Both the CLI spinner and the TUI use it.
type ProgressAggregator struct {
	state    *format.ProgressWithETA
	numTasks int
}

// NewProgressAggregator returns nil if numTasks <= 0.
func NewProgressAggregator(numTasks int) *ProgressAggregator {
	if numTasks <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:    format.NewProgressWithETA(numTasks),
		numTasks: numTasks,
	}
}

// AggregatedProgress is the result of processing one update.
type AggregatedProgress struct {
	Index           int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update processes a single progress update.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.Index, update.Value)
	return AggregatedProgress{
		Index:           update.Index,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration { return a.state.GetETA() }

// NumTasks returns the number of tasks being tracked.
func (a *ProgressAggregator) NumTasks() int { return a.numTasks }
