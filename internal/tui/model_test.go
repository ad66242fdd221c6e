package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bitexact/internal/config"
	"github.com/agbru/bitexact/internal/crosscheck"
	apperrors "github.com/agbru/bitexact/internal/errors"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.AppConfig{Check: "all", Seed: 42, Timeout: time.Minute}
	m := NewModel(context.Background(), testChecks(t), cfg, "v1.2.3", nil)
	t.Cleanup(m.cancel)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModel_ViewBeforeResize(t *testing.T) {
	t.Parallel()
	if got := newTestModel(t).View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestModel_Layout(t *testing.T) {
	t.Parallel()
	m, _ := update(t, newTestModel(t), tea.WindowSizeMsg{Width: 160, Height: 40})

	if l := m.layout; l.left+l.right != 160 || l.metrics+l.chart != l.body || l.body != 38 {
		t.Errorf("panels do not tile the screen: %+v", l)
	}
	view := m.View()
	for _, want := range []string{"bitexact monitor v1.2.3", "seed: 42", "Oracles", "Progress Chart", "Heap:", "RUNNING"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ProgressAndResults(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	row := m.oracles.rows[0]

	m, _ = update(t, m, ProgressMsg{Index: 0, Value: 0.5, AverageProgress: 0.1, ETA: time.Second})
	if m.oracles.rows[0].progress != 0.5 || m.chart.averageProgress != 0.1 {
		t.Errorf("progress not applied: row %+v chart %f", m.oracles.rows[0], m.chart.averageProgress)
	}

	m, _ = update(t, m, ResultsMsg{Results: []crosscheck.CheckResult{{Check: row.check, Oracle: row.oracle, Duration: time.Millisecond}}})
	m, _ = update(t, m, MismatchesMsg{Mismatches: []crosscheck.Mismatch{{Check: row.check, Oracle: row.oracle, Case: 0}}})
	if m.oracles.rows[0].status != taskMismatch || !m.footer.failed {
		t.Errorf("mismatch not applied: %+v", m.oracles.rows[0])
	}

	m, _ = update(t, m, RunCompleteMsg{ExitCode: apperrors.ExitErrorMismatch})
	if !m.done || m.exitCode != apperrors.ExitErrorMismatch {
		t.Errorf("run not completed: done %v exit %d", m.done, m.exitCode)
	}
}

func TestModel_DropsStaleGeneration(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.generation = 3

	m, _ = update(t, m, ProgressMsg{Index: 0, Value: 0.9, Generation: 2})
	m, _ = update(t, m, RunCompleteMsg{ExitCode: apperrors.ExitErrorGeneric, Generation: 2})
	m, cmd := update(t, m, ContextCancelledMsg{Err: context.Canceled, Generation: 2})

	if m.oracles.rows[0].progress != 0 || m.done || cmd != nil {
		t.Errorf("stale messages were applied: row %+v done %v", m.oracles.rows[0], m.done)
	}
}

func TestModel_PauseIgnoresProgress(t *testing.T) {
	t.Parallel()
	m, _ := update(t, newTestModel(t), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.paused || !m.footer.paused {
		t.Fatal("expected paused")
	}
	m, _ = update(t, m, ProgressMsg{Index: 0, Value: 0.5})
	if m.oracles.rows[0].progress != 0 {
		t.Error("progress applied while paused")
	}
}

func TestModel_Reset(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	oldCtx := m.ctx
	m, _ = update(t, m, ProgressMsg{Index: 0, Value: 0.5})
	m, _ = update(t, m, RunCompleteMsg{ExitCode: apperrors.ExitErrorMismatch})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	t.Cleanup(m.cancel)

	if cmd == nil {
		t.Fatal("expected the rerun to be scheduled")
	}
	if oldCtx.Err() == nil {
		t.Error("expected the previous run to be canceled")
	}
	if m.generation != 1 || m.done || m.exitCode != apperrors.ExitSuccess || m.oracles.rows[0].progress != 0 {
		t.Errorf("model not reset: gen %d done %v exit %d", m.generation, m.done, m.exitCode)
	}
}

func TestModel_QuitBeforeDoneIsCanceled(t *testing.T) {
	t.Parallel()
	m, cmd := update(t, newTestModel(t), tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", m.exitCode, apperrors.ExitErrorCanceled)
	}
	if m.ctx.Err() == nil {
		t.Error("expected the run context to be canceled")
	}
}

func TestModel_TimeoutMapsExitCode(t *testing.T) {
	t.Parallel()
	m, cmd := update(t, newTestModel(t), ContextCancelledMsg{Err: context.DeadlineExceeded})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if m.exitCode != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", m.exitCode, apperrors.ExitErrorTimeout)
	}
	if m.oracles.rows[0].status != taskCanceled {
		t.Errorf("unfinished row = %v, want canceled", m.oracles.rows[0].status)
	}
}

func TestStartRunCmd_RunsChecks(t *testing.T) {
	t.Parallel()
	checks := testChecks(t)
	msg := startRunCmd(&programRef{}, context.Background(), checks, config.AppConfig{Timeout: time.Minute}, nil, 5)()

	done, ok := msg.(RunCompleteMsg)
	if !ok {
		t.Fatalf("got %T, want RunCompleteMsg", msg)
	}
	if done.Generation != 5 || done.ExitCode != apperrors.ExitSuccess {
		t.Errorf("RunCompleteMsg = %+v", done)
	}
}

func TestFooterModel_Status(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		setup func(*FooterModel)
		want  string
	}{
		{"running", func(*FooterModel) {}, "RUNNING"},
		{"paused", func(f *FooterModel) { f.SetPaused(true) }, "PAUSED"},
		{"done", func(f *FooterModel) { f.SetDone(true) }, "DONE"},
		{"failed wins", func(f *FooterModel) { f.SetDone(true); f.SetError(true) }, "FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := NewFooterModel()
			f.SetWidth(120)
			tt.setup(&f)
			view := f.View()
			if !strings.Contains(view, tt.want) || !strings.Contains(view, "quit") {
				t.Errorf("footer = %q, want %q", view, tt.want)
			}
		})
	}
}

func TestTotalCases(t *testing.T) {
	t.Parallel()
	checks := testChecks(t)
	want := 0
	for _, c := range checks {
		want += 2 * len(c.Oracles)
	}
	if got := totalCases(checks); got != want {
		t.Errorf("totalCases = %d, want %d", got, want)
	}
}

func TestComputeLayout(t *testing.T) {
	t.Parallel()
	tests := []struct {
		w, h              int
		left, body, chart int
	}{
		{100, 30, 60, 28, 23},
		{80, 4, 48, minBodyHeight, 2},
	}
	for _, tt := range tests {
		l := computeLayout(tt.w, tt.h)
		if l.left != tt.left || l.body != tt.body || l.chart != tt.chart {
			t.Errorf("computeLayout(%d, %d) = %+v", tt.w, tt.h, l)
		}
	}
}
