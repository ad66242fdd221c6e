// Package config parses and validates the bitexact command line.
//
// Values are resolved in priority order: explicit flags, BITEXACT_*
// environment variables, a cached calibration profile, then adaptive
// defaults derived from the host (see thresholds.go).
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/bitexact/internal/errors"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "BITEXACT_"

const (
	// DefaultWords is the operand size, in 32-bit words, of generated
	// workloads.
	DefaultWords = 256
	// DefaultDivisorWords is the divisor size for division checks.
	DefaultDivisorWords = 96
	// DefaultIterations is the number of operand pairs per check.
	DefaultIterations = 32
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 5 * time.Minute
	// MaxWords caps operand sizes so a typo cannot exhaust memory.
	MaxWords = 1 << 22
)

// supportedShells lists the accepted -completion values.
var supportedShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig holds the resolved run configuration.
type AppConfig struct {
	// Check selects the operation to cross-check, or "all".
	Check string
	// Words is the size of the first operand in 32-bit words.
	Words int
	// DivisorWords is the size of the divisor for the div check and of the
	// second operand for gcd.
	DivisorWords int
	// Iterations is the number of operand pairs generated per check.
	Iterations int
	// Seed seeds operand generation. Zero means "pick one and report it".
	Seed int64
	// Oracles is a comma-separated list of oracle names, or "all".
	Oracles string
	// Timeout bounds the whole run.
	Timeout time.Duration

	// Engine thresholds in words; zero means "resolve adaptively".
	Karatsuba int
	Toom      int
	BZ        int
	BZOffset  int

	Verbose bool
	Quiet   bool
	NoColor bool
	TUI     bool

	// MetricsAddr, when set, serves /metrics and /healthz on this address
	// for the duration of the run.
	MetricsAddr string

	Calibrate          bool
	CalibrationProfile string

	// Completion, when set, prints a completion script for that shell and
	// exits.
	Completion string
}

// OracleNames splits Oracles into trimmed names. "all" yields nil, which
// callers read as "every registered oracle".
func (c AppConfig) OracleNames() []string {
	if c.Oracles == "" || c.Oracles == "all" {
		return nil
	}
	var names []string
	for _, n := range strings.Split(c.Oracles, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// ParseConfig parses args (without the program name) into an AppConfig.
// availableChecks lists the valid -check values besides "all". Usage and
// flag errors go to errorWriter. A -help request returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableChecks []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	checkHelp := fmt.Sprintf("operation to cross-check: all, %s", strings.Join(availableChecks, ", "))

	fs.StringVar(&config.Check, "check", "all", checkHelp)
	fs.IntVar(&config.Words, "words", DefaultWords, "operand size in 32-bit words")
	fs.IntVar(&config.DivisorWords, "divisor-words", DefaultDivisorWords, "divisor size in 32-bit words (div, gcd)")
	fs.IntVar(&config.Iterations, "iterations", DefaultIterations, "operand pairs per check")
	fs.Int64Var(&config.Seed, "seed", 0, "operand generator seed (0 picks one)")
	fs.StringVar(&config.Oracles, "oracles", "all", "comma-separated oracles to compare, or all")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "maximum duration of the run")
	fs.IntVar(&config.Karatsuba, "karatsuba", 0, "Karatsuba multiplication threshold in words (0 = auto)")
	fs.IntVar(&config.Toom, "toom", 0, "Toom-Cook-3 multiplication threshold in words (0 = auto)")
	fs.IntVar(&config.BZ, "bz", 0, "Burnikel-Ziegler divisor threshold in words (0 = auto)")
	fs.IntVar(&config.BZOffset, "bz-offset", 0, "Burnikel-Ziegler dividend/divisor offset in words (0 = auto)")
	fs.BoolVar(&config.Verbose, "v", false, "verbose output (per-oracle digests)")
	fs.BoolVar(&config.Verbose, "verbose", false, "verbose output (alias for -v)")
	fs.BoolVar(&config.Quiet, "q", false, "quiet mode: print only the verdict")
	fs.BoolVar(&config.Quiet, "quiet", false, "quiet mode (alias for -q)")
	fs.BoolVar(&config.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&config.TUI, "tui", false, "run the interactive dashboard")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "measure engine thresholds on this machine and save a profile")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "calibration profile path (default ~/.bitexact_calibration.json)")
	fs.StringVar(&config.Completion, "completion", "", "print a completion script: bash, zsh, fish, powershell")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorWriter, "Cross-checks the bitexact arithmetic engine against independent oracles.\n\n")
		fmt.Fprintf(errorWriter, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEnvironment variables (%s*) override defaults but not explicit flags.\n", EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	applyEnvOverrides(&config, fs)

	if err := config.Validate(availableChecks); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableChecks []string) error {
	if c.Completion != "" {
		if !slices.Contains(supportedShells, c.Completion) {
			return apperrors.NewConfigError("unsupported shell %q for -completion (want one of %s)", c.Completion, strings.Join(supportedShells, ", "))
		}
		return nil
	}
	if c.Check != "all" && !slices.Contains(availableChecks, c.Check) {
		return apperrors.NewConfigError("unknown check %q (want all, %s)", c.Check, strings.Join(availableChecks, ", "))
	}
	switch {
	case c.Words < 1 || c.Words > MaxWords:
		return apperrors.NewConfigError("-words must be in [1, %d], got %d", MaxWords, c.Words)
	case c.DivisorWords < 1 || c.DivisorWords > c.Words:
		return apperrors.NewConfigError("-divisor-words must be in [1, -words=%d], got %d", c.Words, c.DivisorWords)
	case c.Iterations < 1:
		return apperrors.NewConfigError("-iterations must be positive, got %d", c.Iterations)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("-timeout must be strictly positive")
	case c.Karatsuba < 0 || c.Toom < 0 || c.BZ < 0 || c.BZOffset < 0:
		return apperrors.NewConfigError("thresholds must be non-negative")
	case c.Quiet && c.Verbose:
		return apperrors.NewConfigError("-q and -v are mutually exclusive")
	case c.Quiet && c.TUI:
		return apperrors.NewConfigError("-q and -tui are mutually exclusive")
	}
	return nil
}
