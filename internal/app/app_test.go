package app

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/bitexact/internal/crosscheck"
	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/logging"
)

// brokenOracle claims every kind and always answers the same bytes, so it
// disagrees with the reference on any non-trivial workload.
type brokenOracle struct{}

func (brokenOracle) Name() string                  { return "broken" }
func (brokenOracle) Supports(crosscheck.Kind) bool { return true }
func (brokenOracle) Compute(crosscheck.Kind, crosscheck.Case) ([]byte, error) {
	return []byte{0}, nil
}

// newTestApp builds an application over a small workload with no cached
// profile.
func newTestApp(t *testing.T, extra []string, opts ...AppOption) *Application {
	t.Helper()
	args := append([]string{
		"bitexact",
		"-words", "12", "-divisor-words", "5", "-iterations", "3", "-seed", "99",
		"-calibration-profile", filepath.Join(t.TempDir(), "missing.json"),
	}, extra...)
	opts = append([]AppOption{WithLogger(logging.NewLogger(io.Discard, "test"))}, opts...)
	a, err := New(args, io.Discard, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNew_ResolvesThresholdsAndSeed(t *testing.T) {
	t.Parallel()
	a, err := New([]string{"bitexact", "-calibration-profile", filepath.Join(t.TempDir(), "none.json")}, io.Discard,
		WithLogger(logging.NewLogger(io.Discard, "test")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Config.Seed == 0 {
		t.Error("expected a seed to be picked")
	}
	if a.Config.Karatsuba == 0 || a.Config.Toom == 0 || a.Config.BZ == 0 || a.Config.BZOffset == 0 {
		t.Errorf("thresholds not resolved: %+v", a.Config)
	}
	if a.ProfileLoaded {
		t.Error("no profile should have been loaded")
	}
	if a.Engine.Thresholds() != a.Config.ToThresholds() {
		t.Errorf("engine thresholds %+v differ from config %+v", a.Engine.Thresholds(), a.Config.ToThresholds())
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		help bool
	}{
		{"help", []string{"bitexact", "-help"}, true},
		{"unknown check", []string{"bitexact", "-check", "pow"}, false},
		{"toom below karatsuba", []string{"bitexact", "-karatsuba", "64", "-toom", "32"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.args, io.Discard, WithLogger(logging.NewLogger(io.Discard, "test")))
			if err == nil {
				t.Fatal("expected an error")
			}
			if IsHelpError(err) != tt.help {
				t.Errorf("IsHelpError(%v) = %v, want %v", err, IsHelpError(err), tt.help)
			}
		})
	}
}

func TestRun_AllOraclesAgree(t *testing.T) {
	a := newTestApp(t, []string{"-no-color"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{"seed 99", "--- Starting Execution ---", "math/big", "Global Status: Success"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_Quiet(t *testing.T) {
	a := newTestApp(t, []string{"-q", "-check", "gcd"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output: %s", code, out.String())
	}
	if !strings.HasPrefix(out.String(), "ok ") || strings.Count(out.String(), "\n") != 1 {
		t.Errorf("quiet output = %q, want a single ok line", out.String())
	}
}

func TestRun_MismatchExitCode(t *testing.T) {
	a := newTestApp(t, []string{"-q", "-check", "mul", "-oracles", "math/big,broken"}, WithOracle(brokenOracle{}))
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorMismatch {
		t.Fatalf("exit code = %d, want %d (output %q)", code, apperrors.ExitErrorMismatch, out.String())
	}
	if !strings.HasPrefix(out.String(), "mismatch ") || !strings.Contains(out.String(), "mul/broken") {
		t.Errorf("quiet output = %q", out.String())
	}
}

func TestRun_UnknownOracle(t *testing.T) {
	a := newTestApp(t, []string{"-oracles", "nope"})
	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRun_NoOracleSupportsCheck(t *testing.T) {
	a := newTestApp(t, []string{"-check", "round", "-oracles", "karatsuba"})
	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRun_Canceled(t *testing.T) {
	a := newTestApp(t, []string{"-q"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := a.Run(ctx, io.Discard); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRun_Completion(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, []string{"-completion", "bash"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "bitexact") || !strings.Contains(out.String(), "gcd") {
		t.Errorf("completion script does not list checks:\n%s", out.String())
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-words", "8", "-V"}, true},
		{[]string{"-v"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.HasPrefix(out.String(), "bitexact "+Version) || !strings.Contains(out.String(), "go:") {
		t.Errorf("version output = %q", out.String())
	}
}
