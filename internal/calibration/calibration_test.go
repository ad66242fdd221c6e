package calibration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agbru/bitexact/internal/config"
	"github.com/agbru/bitexact/internal/crosscheck"
)

func quickOptions() Options {
	return Options{
		KaratsubaSizes: []int{8, 16},
		ToomSizes:      []int{24, 36},
		BZSizes:        []int{8, 16},
		MinSampleTime:  time.Microsecond,
		Rounds:         1,
		Seed:           7,
	}
}

func TestRunCalibration(t *testing.T) {
	t.Parallel()
	var (
		mu      sync.Mutex
		updates []crosscheck.ProgressUpdate
	)
	reporter := crosscheck.ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan crosscheck.ProgressUpdate, numTasks int, _ io.Writer) {
		defer wg.Done()
		if numTasks != numSweeps {
			t.Errorf("numTasks = %d, want %d", numTasks, numSweeps)
		}
		for u := range ch {
			mu.Lock()
			updates = append(updates, u)
			mu.Unlock()
		}
	})

	var out bytes.Buffer
	profile, err := RunCalibration(context.Background(), &out, quickOptions(), reporter)
	if err != nil {
		t.Fatalf("RunCalibration: %v", err)
	}
	if err := profile.Thresholds.Validate(); err != nil {
		t.Errorf("calibrated thresholds do not validate: %v", err)
	}
	if !profile.IsValid() {
		t.Errorf("fresh profile is not valid: %s", profile)
	}
	if profile.CalibrationTime == "" {
		t.Error("CalibrationTime not recorded")
	}
	for _, want := range []string{"Karatsuba vs schoolbook", "Toom-Cook-3 vs Karatsuba", "Burnikel-Ziegler vs Knuth", "Calibration"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if got := len(updates); got != 6 {
		t.Errorf("got %d progress updates, want one per ladder point (6)", got)
	}
}

func TestRunCalibrationCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunCalibration(ctx, &bytes.Buffer{}, quickOptions(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunCalibration on a canceled context = %v, want context.Canceled", err)
	}
}

func TestLoadCachedCalibration(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")

	if _, ok := LoadCachedCalibration(config.AppConfig{}, path); ok {
		t.Error("missing profile must not apply")
	}

	p := NewProfile()
	p.Thresholds = buildThresholds(40, 160, 64)
	if err := p.SaveProfile(path); err != nil {
		t.Fatal(err)
	}

	cfg, ok := LoadCachedCalibration(config.AppConfig{Toom: 300}, path)
	if !ok {
		t.Fatal("valid profile not applied")
	}
	if cfg.Karatsuba != 40 || cfg.BZ != 64 || cfg.BZOffset != p.Thresholds.BurnikelZieglerOffset {
		t.Errorf("profile thresholds not applied: %+v", cfg)
	}
	if cfg.Toom != 300 {
		t.Errorf("explicit threshold overwritten by profile: %d", cfg.Toom)
	}

	p.CalibratedAt = time.Now().Add(-2 * MaxProfileAge)
	if err := p.SaveProfile(path); err != nil {
		t.Fatal(err)
	}
	if _, ok := LoadCachedCalibration(config.AppConfig{}, path); ok {
		t.Error("stale profile must not apply")
	}
}
