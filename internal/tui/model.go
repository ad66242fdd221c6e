package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bitexact/internal/config"
	"github.com/agbru/bitexact/internal/crosscheck"
	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/metrics"
	"github.com/agbru/bitexact/internal/sysmon"
)

const (
	headerHeight  = 1
	footerHeight  = 1
	minBodyHeight = 4
	// OraclesPanelWidthPercent is the share of the width given to the
	// oracle table; metrics and chart stack in the rest.
	OraclesPanelWidthPercent = 60
	// MetricsPanelHeight caps the metrics panel, which never takes more
	// than half the body.
	MetricsPanelHeight = 5
	tickInterval       = 500 * time.Millisecond
)

// layout is the size of every panel for a terminal size.
type layout struct {
	body          int
	left, right   int
	metrics       int
	chart         int
	width, height int
}

func computeLayout(width, height int) layout {
	l := layout{width: width, height: height}
	l.body = max(height-headerHeight-footerHeight, minBodyHeight)
	l.left = width * OraclesPanelWidthPercent / 100
	l.right = width - l.left
	l.metrics = min(MetricsPanelHeight, l.body/2)
	l.chart = l.body - l.metrics
	return l
}

// run is the state of the cross-check run the dashboard is showing.
// generation increases on every restart; messages of older runs are
// dropped.
type run struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	oracles OraclesModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel
	keymap  KeyMap

	run
	layout layout
	paused bool

	parentCtx context.Context
	checks    []crosscheck.Check
	config    config.AppConfig
	recorder  *metrics.Recorder
	memory    *metrics.MemoryCollector
	sampler   *sysmon.Sampler
	ref       *programRef
}

// NewModel builds the dashboard of checks. rec may be nil.
func NewModel(parentCtx context.Context, checks []crosscheck.Check, cfg config.AppConfig, version string, rec *metrics.Recorder) Model {
	m := Model{
		header:    NewHeaderModel(version, cfg.Check, cfg.Seed),
		oracles:   NewOraclesModel(checks),
		metrics:   NewMetricsModel(totalCases(checks)),
		chart:     NewChartModel(),
		footer:    NewFooterModel(),
		keymap:    DefaultKeyMap(),
		parentCtx: parentCtx,
		checks:    checks,
		config:    cfg,
		recorder:  rec,
		memory:    metrics.NewMemoryCollector(),
		sampler:   sysmon.NewSampler(),
		ref:       &programRef{},
	}
	m.run = newRun(parentCtx, 0)
	return m
}

func newRun(parent context.Context, generation uint64) run {
	ctx, cancel := context.WithCancel(parent)
	return run{ctx: ctx, cancel: cancel, generation: generation, exitCode: apperrors.ExitSuccess}
}

// totalCases counts the cases every oracle of every check evaluates.
func totalCases(checks []crosscheck.Check) int {
	n := 0
	for _, c := range checks {
		n += c.Workload.Iterations * len(c.Oracles)
	}
	return n
}

func (m Model) Init() tea.Cmd {
	return m.startCmds()
}

func (m Model) startCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.checks, m.config, m.recorder, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// current reports whether a message tagged with gen belongs to the run on
// screen.
func (m Model) current(gen uint64) bool { return gen == m.generation }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(m.memory), sampleSysStatsCmd(m.sampler), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		m.metrics.UpdateProcess(msg.ProcessRSS)

	case ProgressMsg:
		if m.current(msg.Generation) && !m.paused {
			m.oracles.SetProgress(msg.Index, msg.Value)
			m.chart.AddDataPoint(msg.AverageProgress, msg.ETA)
			m.metrics.UpdateProgress(msg.AverageProgress)
		}

	case ResultsMsg:
		if m.current(msg.Generation) {
			m.oracles.ApplyResults(msg.Results)
		}

	case MismatchesMsg:
		if m.current(msg.Generation) {
			m.oracles.ApplyMismatches(msg.Mismatches)
			m.footer.SetError(true)
		}

	case ErrorMsg:
		if m.current(msg.Generation) {
			m.footer.SetError(true)
		}

	case RunCompleteMsg:
		if m.current(msg.Generation) {
			m.finish(msg.ExitCode)
		}

	case ContextCancelledMsg:
		if !m.current(msg.Generation) {
			return m, nil
		}
		if !m.done {
			m.oracles.MarkCanceled()
			m.finish(apperrors.HandleCheckError(msg.Err, m.config.Timeout, io.Discard))
		}
		return m, tea.Quit
	}
	return m, nil
}

// finish freezes the dashboard on the outcome of the current run.
func (m *Model) finish(exitCode int) {
	m.done, m.exitCode = true, exitCode
	m.header.SetDone()
	m.chart.SetDone(m.header.Elapsed())
	m.footer.SetDone(true)
	if exitCode != apperrors.ExitSuccess {
		m.footer.SetError(true)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)

	case key.Matches(msg, m.keymap.Reset):
		return m.restart()

	case key.Matches(msg, m.keymap.Up, m.keymap.Down, m.keymap.PageUp, m.keymap.PageDown):
		m.oracles.Update(msg)
	}
	return m, nil
}

// restart cancels the current run and starts the same checks again under
// a new generation.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.cancel()
	m.run = newRun(m.parentCtx, m.generation+1)
	m.paused = false

	m.header.Reset()
	m.oracles.Reset()
	m.chart.Reset()
	m.metrics = NewMetricsModel(totalCases(m.checks))
	m.metrics.SetSize(m.layout.right, m.layout.metrics)
	m.footer = NewFooterModel()
	m.footer.SetWidth(m.layout.width)
	return m, m.startCmds()
}

func (m *Model) resize(width, height int) {
	m.layout = computeLayout(width, height)
	m.header.SetWidth(width)
	m.footer.SetWidth(width)
	m.oracles.SetSize(m.layout.left, m.layout.body)
	m.metrics.SetSize(m.layout.right, m.layout.metrics)
	m.chart.SetSize(m.layout.right, m.layout.chart)
}

func (m Model) View() string {
	if m.layout.width == 0 || m.layout.height == 0 {
		return "Initializing..."
	}
	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.oracles.View(), right)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

// Run shows the dashboard while checks run and returns the process exit
// code.
func Run(ctx context.Context, checks []crosscheck.Check, cfg config.AppConfig, version string, rec *metrics.Recorder) int {
	// Styles depend on the theme app.Run selected.
	initTUIStyles()

	model := NewModel(ctx, checks, cfg, version, rec)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Must be set before Run: the bridge sends from the run goroutine.
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := final.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd executes and analyzes checks, reporting through the bridge.
func startRunCmd(ref *programRef, ctx context.Context, checks []crosscheck.Check, cfg config.AppConfig, rec *metrics.Recorder, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, gen: gen}
		presenter := &TUIResultPresenter{ref: ref, gen: gen, timeout: cfg.Timeout}

		results := crosscheck.ExecuteChecks(ctx, checks, reporter, io.Discard, crosscheck.WithRecorder(rec))
		return RunCompleteMsg{
			ExitCode:   crosscheck.AnalyzeResults(results, presenter, presenter, rec, io.Discard),
			Generation: gen,
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{MemorySnapshot: mc.Snapshot(), NumGoroutine: runtime.NumGoroutine()}
	}
}

func sampleSysStatsCmd(s *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		st := s.Sample()
		return SysStatsMsg{CPUPercent: st.CPUPercent, MemPercent: st.MemPercent, ProcessRSS: st.ProcessRSS}
	}
}

// watchContextCmd reports the end of ctx, whether from a signal, the
// timeout or a restart.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
