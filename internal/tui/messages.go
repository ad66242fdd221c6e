package tui

import (
	"time"

	"github.com/agbru/bitexact/internal/crosscheck"
	"github.com/agbru/bitexact/internal/metrics"
)

// Messages sent to the bubbletea program. Those produced by a run carry
// the generation of that run so a restart can drop stale ones.

// ProgressMsg reports the progress of one oracle run and of the whole run.
type ProgressMsg struct {
	Index           int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	Generation      uint64
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// ResultsMsg carries every oracle result of a finished run.
type ResultsMsg struct {
	Results    []crosscheck.CheckResult
	Generation uint64
}

// MismatchesMsg carries the disagreements found in a finished run.
type MismatchesMsg struct {
	Mismatches []crosscheck.Mismatch
	Generation uint64
}

// ErrorMsg reports the first oracle failure of a run.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a Go runtime memory sample.
type MemStatsMsg struct {
	metrics.MemorySnapshot
	NumGoroutine int
}

// SysStatsMsg carries a system and process resource sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	ProcessRSS uint64
}

// RunCompleteMsg signals that a run finished and was analyzed.
type RunCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the run context was canceled, either by
// a signal or by the timeout.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
