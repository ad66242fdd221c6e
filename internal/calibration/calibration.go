// Package calibration measures the engine's algorithm crossovers on the
// running machine and persists them as a profile that later runs apply
// automatically.
package calibration

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/agbru/bitexact/internal/config"
	"github.com/agbru/bitexact/internal/crosscheck"
	"github.com/agbru/bitexact/internal/logging"
	"github.com/agbru/bitexact/internal/natural"
)

// calibrationResult is one ladder point: the time of the incumbent
// algorithm (Baseline) and of the one being promoted (Candidate) at
// Threshold words.
type calibrationResult struct {
	Threshold int
	Baseline  time.Duration
	Candidate time.Duration
	Err       error
}

func (r calibrationResult) candidateWins() bool {
	return r.Err == nil && r.Candidate > 0 && r.Candidate < r.Baseline
}

// Options controls a calibration run.
type Options struct {
	KaratsubaSizes []int
	// ToomSizes is derived from the measured Karatsuba threshold when nil.
	ToomSizes []int
	BZSizes   []int
	// MinSampleTime is the minimum time a timed sample runs for; the
	// operation is repeated until it is reached.
	MinSampleTime time.Duration
	// Rounds is the number of samples per measurement; the fastest counts.
	Rounds int
	Seed   int64
	Logger logging.Logger
}

// DefaultOptions returns the options of a full calibration.
func DefaultOptions() Options {
	return Options{
		KaratsubaSizes: GenerateKaratsubaLadder(),
		BZSizes:        GenerateBurnikelZieglerLadder(),
		MinSampleTime:  5 * time.Millisecond,
		Rounds:         3,
		Seed:           1,
	}
}

// sweep identifies one crossover search for progress reporting.
const (
	sweepKaratsuba = iota
	sweepToom
	sweepBZ
	numSweeps
)

// RunCalibration measures the Karatsuba, Toom-Cook-3 and Burnikel-Ziegler
// crossovers, prints a summary to out and returns a profile holding the
// resulting thresholds. Each crossover is measured by running the engine
// with the threshold just above and exactly at the size being probed, so
// only the top level of the recursion differs.
func RunCalibration(ctx context.Context, out io.Writer, opts Options, reporter crosscheck.ProgressReporter) (*CalibrationProfile, error) {
	if opts.Rounds <= 0 {
		opts.Rounds = 1
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(io.Discard, "calibration")
	}
	if reporter == nil {
		reporter = crosscheck.NullProgressReporter{}
	}
	start := time.Now()
	fmt.Fprintf(out, "--- Calibration Mode ---\n")

	progressChan := make(chan crosscheck.ProgressUpdate, numSweeps*crosscheck.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, progressChan, numSweeps, out)

	c := &calibrator{ctx: ctx, opts: opts, rng: rand.New(rand.NewSource(opts.Seed)), progress: progressChan}
	kResults, err := c.sweep(sweepKaratsuba, opts.KaratsubaSizes, c.karatsubaPoint)
	var tResults, bResults []calibrationResult
	karatsuba := crossover(kResults)
	if err == nil {
		toomSizes := opts.ToomSizes
		if toomSizes == nil {
			toomSizes = GenerateToomLadder(karatsuba)
		}
		tResults, err = c.sweep(sweepToom, toomSizes, func(n int) calibrationResult { return c.toomPoint(n, karatsuba) })
	}
	if err == nil {
		bResults, err = c.sweep(sweepBZ, opts.BZSizes, c.bzPoint)
	}
	close(progressChan)
	wg.Wait()
	if err != nil {
		opts.Logger.Warn("calibration interrupted", logging.Err(err))
		return nil, err
	}

	profile := NewProfile()
	profile.Thresholds = buildThresholds(karatsuba, crossover(tResults), crossover(bResults))
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()

	printCalibrationResults(out, "Karatsuba vs schoolbook", kResults, profile.Thresholds.KaratsubaMul)
	printCalibrationResults(out, "Toom-Cook-3 vs Karatsuba", tResults, profile.Thresholds.ToomCook3Mul)
	printCalibrationResults(out, "Burnikel-Ziegler vs Knuth", bResults, profile.Thresholds.BurnikelZiegler)
	printCalibrationOutput(profile.Thresholds, out)

	opts.Logger.Info("calibration finished",
		logging.Int("karatsuba", profile.Thresholds.KaratsubaMul),
		logging.Int("toom3", profile.Thresholds.ToomCook3Mul),
		logging.Int("bz", profile.Thresholds.BurnikelZiegler),
		logging.String("elapsed", profile.CalibrationTime))
	return profile, nil
}

// LoadCachedCalibration fills the zero thresholds of cfg from the profile
// at path (the default path when empty). It reports whether a valid,
// fresh profile was applied. Thresholds already set by flags or the
// environment win over the profile.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.IsStale(MaxProfileAge) {
		return cfg, false
	}
	t := p.Thresholds
	if cfg.Karatsuba == 0 {
		cfg.Karatsuba = t.KaratsubaMul
	}
	if cfg.Toom == 0 {
		cfg.Toom = max(t.ToomCook3Mul, cfg.Karatsuba)
	}
	if cfg.BZ == 0 {
		cfg.BZ = t.BurnikelZiegler
	}
	if cfg.BZOffset == 0 {
		cfg.BZOffset = t.BurnikelZieglerOffset
	}
	return cfg, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Measurement
// ─────────────────────────────────────────────────────────────────────────────

type calibrator struct {
	ctx      context.Context
	opts     Options
	rng      *rand.Rand
	progress chan<- crosscheck.ProgressUpdate
}

func (c *calibrator) sweep(index int, sizes []int, point func(n int) calibrationResult) ([]calibrationResult, error) {
	results := make([]calibrationResult, 0, len(sizes))
	for i, n := range sizes {
		if err := c.ctx.Err(); err != nil {
			return results, err
		}
		r := point(n)
		if r.Err != nil {
			c.opts.Logger.Warn("calibration point failed", logging.Int("words", n), logging.Err(r.Err))
		}
		results = append(results, r)
		select {
		case c.progress <- crosscheck.ProgressUpdate{Index: index, Value: float64(i+1) / float64(len(sizes))}:
		case <-c.ctx.Done():
			return results, c.ctx.Err()
		}
	}
	if len(sizes) == 0 {
		c.progress <- crosscheck.ProgressUpdate{Index: index, Value: 1}
	}
	return results, nil
}

// karatsubaPoint times an n-word product with schoolbook and with one
// Karatsuba level on top of schoolbook.
func (c *calibrator) karatsubaPoint(n int) calibrationResult {
	x, y := c.operand(n), c.operand(n)
	return c.compare(n,
		natural.Thresholds{KaratsubaMul: n + 1, ToomCook3Mul: n + 1},
		natural.Thresholds{KaratsubaMul: n, ToomCook3Mul: n + 1},
		func(e natural.Engine) { e.Mul(x, y) })
}

// toomPoint times an n-word product with Karatsuba and with one Toom-Cook-3
// level on top, both finishing with schoolbook below karatsuba words.
func (c *calibrator) toomPoint(n, karatsuba int) calibrationResult {
	x, y := c.operand(n), c.operand(n)
	k := min(max(2, karatsuba), n)
	return c.compare(n,
		natural.Thresholds{KaratsubaMul: k, ToomCook3Mul: n + 1},
		natural.Thresholds{KaratsubaMul: k, ToomCook3Mul: n},
		func(e natural.Engine) { e.Mul(x, y) })
}

// bzPoint times the division of a 2n+offset word dividend by an n-word
// divisor with Knuth's Algorithm D and with Burnikel-Ziegler.
func (c *calibrator) bzPoint(n int) calibrationResult {
	u, v := c.operand(2*n+natural.DefaultBurnikelZieglerOffset), c.operand(n)
	return c.compare(n,
		natural.Thresholds{BurnikelZiegler: n + 1},
		natural.Thresholds{BurnikelZiegler: n},
		func(e natural.Engine) { e.DivRem(u, v) })
}

// compare times op on an engine built from each partial threshold set.
// Fields left zero take their default, adjusted so the set validates.
func (c *calibrator) compare(n int, baseline, candidate natural.Thresholds, op func(natural.Engine)) calibrationResult {
	r := calibrationResult{Threshold: n}
	be, err := natural.NewEngine(complete(baseline))
	if err != nil {
		r.Err = err
		return r
	}
	ce, err := natural.NewEngine(complete(candidate))
	if err != nil {
		r.Err = err
		return r
	}
	for range c.opts.Rounds {
		b := c.measure(func() { op(be) })
		cd := c.measure(func() { op(ce) })
		if r.Baseline == 0 || b < r.Baseline {
			r.Baseline = b
		}
		if r.Candidate == 0 || cd < r.Candidate {
			r.Candidate = cd
		}
	}
	return r
}

// complete fills zero fields of t so that it validates.
func complete(t natural.Thresholds) natural.Thresholds {
	d := natural.DefaultThresholds()
	if t.KaratsubaMul == 0 {
		t.KaratsubaMul = d.KaratsubaMul
	}
	if t.ToomCook3Mul == 0 {
		t.ToomCook3Mul = d.ToomCook3Mul
	}
	t.ToomCook3Mul = max(t.ToomCook3Mul, t.KaratsubaMul, 3)
	t.KaratsubaSqr = max(2, t.KaratsubaMul)
	t.ToomCook3Sqr = t.ToomCook3Mul
	if t.BurnikelZiegler == 0 {
		t.BurnikelZiegler = d.BurnikelZiegler
	}
	t.BurnikelZieglerOffset = d.BurnikelZieglerOffset
	return t
}

// measure returns the mean duration of f over enough repetitions to last at
// least MinSampleTime.
func (c *calibrator) measure(f func()) time.Duration {
	reps := 0
	start := time.Now()
	for {
		f()
		reps++
		if elapsed := time.Since(start); elapsed >= c.opts.MinSampleTime {
			return elapsed / time.Duration(reps)
		}
	}
}

// operand returns a random n-word natural with a non-zero top word.
func (c *calibrator) operand(n int) natural.Natural {
	w := make([]uint32, n)
	for i := range w {
		w[i] = c.rng.Uint32()
	}
	w[n-1] |= 1 << 31
	return natural.FromWords(w...)
}
