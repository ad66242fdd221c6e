package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/bitexact/internal/calibration"
	"github.com/agbru/bitexact/internal/cli"
	"github.com/agbru/bitexact/internal/config"
	"github.com/agbru/bitexact/internal/crosscheck"
	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/logging"
	"github.com/agbru/bitexact/internal/metrics"
	"github.com/agbru/bitexact/internal/natural"
	"github.com/agbru/bitexact/internal/server"
	"github.com/agbru/bitexact/internal/tui"
	"github.com/agbru/bitexact/internal/ui"
)

// Application represents the bitexact application instance.
type Application struct {
	Config    config.AppConfig
	Engine    natural.Engine
	Registry  *crosscheck.Registry
	Logger    logging.Logger
	ErrWriter io.Writer

	// ProfileLoaded reports whether thresholds came from a cached
	// calibration profile.
	ProfileLoaded bool

	extraOracles []crosscheck.Oracle
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the default stderr logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithOracle registers an additional oracle next to the built-in ones.
func WithOracle(o crosscheck.Oracle) AppOption {
	return func(a *Application) { a.extraOracles = append(a.extraOracles, o) }
}

// New creates a new Application instance by parsing command-line arguments.
// Thresholds left unset by flags and environment are taken from a cached
// calibration profile, then from host estimates. A zero seed is replaced
// by a fresh one so every run is reproducible from its printed seed.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "app")
	}

	programName := "bitexact"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, crosscheck.KindNames())
	if err != nil {
		return nil, err
	}

	cfg, app.ProfileLoaded = calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile)
	cfg = config.ApplyAdaptiveThresholds(cfg)
	if cfg.Seed == 0 {
		cfg.Seed = newSeed()
	}

	engine, err := natural.NewEngine(cfg.ToThresholds())
	if err != nil {
		return nil, apperrors.NewConfigError("invalid thresholds: %v", err)
	}
	app.Engine = engine
	app.Registry = crosscheck.NewRegistry(engine)
	for _, o := range app.extraOracles {
		app.Registry.Register(o)
	}

	app.Config = cfg
	return app, nil
}

// newSeed returns a non-zero seed derived from the clock.
func newSeed() int64 {
	return time.Now().UnixNano()&(1<<62-1) | 1
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)
	a.Logger.Debug("configuration resolved",
		logging.String("check", a.Config.Check),
		logging.String("seed", fmt.Sprint(a.Config.Seed)),
		logging.Int("karatsuba", a.Config.Karatsuba),
		logging.Int("toom3", a.Config.Toom),
		logging.Int("bz", a.Config.BZ),
		logging.String("profile", fmt.Sprint(a.ProfileLoaded)))

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	checks, err := a.buildChecks()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	rec, err := a.startMetrics(ctx)
	if err != nil {
		a.Logger.Error("cannot serve metrics", err, logging.String("addr", a.Config.MetricsAddr))
		return apperrors.ExitErrorConfig
	}

	if a.Config.TUI {
		return tui.Run(ctx, checks, a.Config, Version, rec)
	}
	return a.runChecks(ctx, checks, rec, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, crosscheck.KindNames()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// buildChecks resolves the -check and -oracles selections into checks.
func (a *Application) buildChecks() ([]crosscheck.Check, error) {
	kinds, err := crosscheck.ParseKinds(a.Config.Check)
	if err != nil {
		return nil, err
	}
	oracles, err := a.Registry.Select(a.Config.OracleNames())
	if err != nil {
		return nil, err
	}
	w := crosscheck.Workload{
		Words:        a.Config.Words,
		DivisorWords: a.Config.DivisorWords,
		Iterations:   a.Config.Iterations,
		Seed:         a.Config.Seed,
	}
	checks := crosscheck.BuildChecks(kinds, w, oracles)
	if len(checks) == 0 {
		return nil, fmt.Errorf("no selected oracle supports check %q", a.Config.Check)
	}
	return checks, nil
}

// startMetrics creates a recorder and, when -metrics-addr is set, serves
// it until ctx is done.
func (a *Application) startMetrics(ctx context.Context) (*metrics.Recorder, error) {
	rec := metrics.NewRecorder(metrics.NewMemoryCollector())
	if a.Config.MetricsAddr == "" {
		return rec, nil
	}
	if err := server.New(a.Config.MetricsAddr, rec, a.Logger).Start(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

// runCalibration measures the engine thresholds and saves the profile.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	opts := calibration.DefaultOptions()
	opts.Seed = a.Config.Seed
	opts.Logger = a.Logger

	var reporter crosscheck.ProgressReporter = cli.CLIProgressReporter{}
	if a.Config.Quiet {
		reporter = crosscheck.NullProgressReporter{}
	}
	profile, err := calibration.RunCalibration(ctx, out, opts, reporter)
	if err != nil {
		return apperrors.HandleCheckError(err, a.Config.Timeout, a.ErrWriter)
	}

	path := a.Config.CalibrationProfile
	if path == "" {
		path = calibration.GetDefaultProfilePath()
	}
	if err := profile.SaveProfile(path); err != nil {
		a.Logger.Error("cannot save calibration profile", err, logging.String("path", path))
		return apperrors.ExitErrorGeneric
	}
	fmt.Fprintf(out, "\nProfile saved to %s\n", path)
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
