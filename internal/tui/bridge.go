package tui

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bitexact/internal/crosscheck"
	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/format"
)

// programRef lets run goroutines reach the program. bubbletea copies the
// model on every Update, so the program is held behind a pointer shared by
// all copies. Sends before SetProgram are dropped.
type programRef struct {
	program atomic.Pointer[tea.Program]
}

func (r *programRef) SetProgram(p *tea.Program) { r.program.Store(p) }

func (r *programRef) Send(msg tea.Msg) {
	if p := r.program.Load(); p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards aggregated progress to the dashboard.
type TUIProgressReporter struct {
	ref *programRef
	gen uint64
}

var _ crosscheck.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress sends one ProgressMsg per update, then ProgressDoneMsg
// once progressChan is closed.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan crosscheck.ProgressUpdate, numTasks int, _ io.Writer) {
	defer wg.Done()

	agg := crosscheck.NewProgressAggregator(numTasks)
	if agg == nil {
		crosscheck.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			Index:           ap.Index,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
			Generation:      t.gen,
		})
	}
	t.ref.Send(ProgressDoneMsg{Generation: t.gen})
}

// TUIResultPresenter turns the report of a finished run into dashboard
// messages. Nothing is written to the terminal.
type TUIResultPresenter struct {
	ref     *programRef
	gen     uint64
	timeout time.Duration
}

var (
	_ crosscheck.ResultPresenter = (*TUIResultPresenter)(nil)
	_ crosscheck.ErrorHandler    = (*TUIResultPresenter)(nil)
)

func (t *TUIResultPresenter) PresentComparisonTable(results []crosscheck.CheckResult, _ io.Writer) {
	t.ref.Send(ResultsMsg{Results: results, Generation: t.gen})
}

func (t *TUIResultPresenter) PresentMismatches(mismatches []crosscheck.Mismatch, _ io.Writer) {
	t.ref.Send(MismatchesMsg{Mismatches: mismatches, Generation: t.gen})
}

func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError flags the failure on the dashboard and maps err to an exit
// code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: t.gen})
	return apperrors.HandleCheckError(err, t.timeout, io.Discard)
}
