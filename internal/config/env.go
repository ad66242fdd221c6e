// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags may be given in either form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the BITEXACT_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// setInt returns an apply function storing a parsed int into the field
// selected by field. Unparsable values are ignored.
func setInt(field func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*field(c) = parsed
		}
	}
}

func setBool(field func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := field(c)
		*p = parseBoolEnv(v, *p)
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"WORDS", []string{"words"}, setInt(func(c *AppConfig) *int { return &c.Words })},
	{"DIVISOR_WORDS", []string{"divisor-words"}, setInt(func(c *AppConfig) *int { return &c.DivisorWords })},
	{"ITERATIONS", []string{"iterations"}, setInt(func(c *AppConfig) *int { return &c.Iterations })},
	{"KARATSUBA", []string{"karatsuba"}, setInt(func(c *AppConfig) *int { return &c.Karatsuba })},
	{"TOOM", []string{"toom"}, setInt(func(c *AppConfig) *int { return &c.Toom })},
	{"BZ", []string{"bz"}, setInt(func(c *AppConfig) *int { return &c.BZ })},
	{"BZ_OFFSET", []string{"bz-offset"}, setInt(func(c *AppConfig) *int { return &c.BZOffset })},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"CHECK", []string{"check"}, func(c *AppConfig, v string) { c.Check = v }},
	{"ORACLES", []string{"oracles"}, func(c *AppConfig, v string) { c.Oracles = v }},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) { c.MetricsAddr = v }},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) { c.CalibrationProfile = v }},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, setBool(func(c *AppConfig) *bool { return &c.Verbose })},
	{"QUIET", []string{"q", "quiet"}, setBool(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, setBool(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, setBool(func(c *AppConfig) *bool { return &c.TUI })},
	{"CALIBRATE", []string{"calibrate"}, setBool(func(c *AppConfig) *bool { return &c.Calibrate })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// Priority: CLI flags > environment variables > defaults.
//
// Supported environment variables (all prefixed with BITEXACT_):
//   - CHECK, WORDS, DIVISOR_WORDS, ITERATIONS, SEED, ORACLES, TIMEOUT,
//     KARATSUBA, TOOM, BZ, BZ_OFFSET, VERBOSE, QUIET, NO_COLOR, TUI,
//     METRICS_ADDR, CALIBRATE, CALIBRATION_PROFILE
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
