package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bitexact/internal/crosscheck"
	"github.com/agbru/bitexact/internal/natural"
)

// testChecks builds mul and div checks over every registered oracle.
func testChecks(t *testing.T) []crosscheck.Check {
	t.Helper()
	oracles, err := crosscheck.NewRegistry(natural.DefaultEngine).Select(nil)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	w := crosscheck.Workload{Words: 8, DivisorWords: 3, Iterations: 2, Seed: 7}
	return crosscheck.BuildChecks([]crosscheck.Kind{crosscheck.KindMul, crosscheck.KindDiv}, w, oracles)
}

func TestNewOraclesModel_OneRowPerOracle(t *testing.T) {
	t.Parallel()
	checks := testChecks(t)
	m := NewOraclesModel(checks)

	want := 0
	for _, c := range checks {
		want += len(c.Oracles)
	}
	if len(m.rows) != want {
		t.Fatalf("got %d rows, want %d", len(m.rows), want)
	}
	if m.rows[0].check != checks[0].Kind || m.rows[0].oracle != checks[0].Oracles[0].Name() {
		t.Errorf("first row = %+v, want first oracle of first check", m.rows[0])
	}
	for _, r := range m.rows {
		if r.status != taskPending {
			t.Errorf("row %s/%s starts %v", r.check, r.oracle, r.status)
		}
	}
}

func TestOraclesModel_Lifecycle(t *testing.T) {
	t.Parallel()
	m := NewOraclesModel(testChecks(t))
	first, second := m.rows[0], m.rows[1]

	m.SetProgress(0, 0.5)
	m.SetProgress(-1, 0.5)
	m.SetProgress(len(m.rows), 0.5)
	if m.rows[0].status != taskRunning || m.rows[0].progress != 0.5 {
		t.Errorf("row 0 after progress = %+v", m.rows[0])
	}

	m.ApplyResults([]crosscheck.CheckResult{
		{Check: first.check, Oracle: first.oracle, Duration: time.Second},
		{Check: second.check, Oracle: second.oracle, Err: errors.New("boom")},
	})
	m.ApplyMismatches([]crosscheck.Mismatch{{Check: first.check, Oracle: first.oracle, Case: 1}})

	if m.rows[0].status != taskMismatch || m.rows[0].caseIdx != 1 || m.rows[0].progress != 1 {
		t.Errorf("row 0 = %+v, want mismatch at case 1", m.rows[0])
	}
	if m.rows[1].status != taskFailed {
		t.Errorf("row 1 = %v, want failed", m.rows[1].status)
	}

	m.MarkCanceled()
	agrees, mismatches, failed := m.Counts()
	if agrees != 0 || mismatches != 1 || failed != 1 {
		t.Errorf("Counts() = %d, %d, %d", agrees, mismatches, failed)
	}
	if m.rows[2].status != taskCanceled {
		t.Errorf("unfinished row = %v, want canceled", m.rows[2].status)
	}

	m.Reset()
	for _, r := range m.rows {
		if r.status != taskPending || r.progress != 0 {
			t.Fatalf("row not reset: %+v", r)
		}
	}
}

func TestOraclesModel_Scroll(t *testing.T) {
	t.Parallel()
	m := NewOraclesModel(testChecks(t))
	m.SetSize(100, 8) // three visible rows

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.offset != 0 {
		t.Errorf("offset went below zero: %d", m.offset)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.offset != 1 {
		t.Errorf("offset after down = %d, want 1", m.offset)
	}
	for range len(m.rows) {
		m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	}
	if want := len(m.rows) - m.visibleRows(); m.offset != want {
		t.Errorf("offset after paging = %d, want %d", m.offset, want)
	}
}

func TestOraclesModel_View(t *testing.T) {
	t.Parallel()
	m := NewOraclesModel(testChecks(t))
	m.SetSize(120, 30)
	m.SetProgress(0, 0.5)

	view := m.View()
	for _, want := range []string{"Oracles", "Check", "Status", "math/big", "running", "50.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	if got := truncate("burnikel-ziegler", 8); got != "burnike…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("gmp", 8); got != "gmp" {
		t.Errorf("truncate = %q", got)
	}
}
