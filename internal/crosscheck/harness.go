package crosscheck

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/logging"
	"github.com/agbru/bitexact/internal/metrics"
)

// ProgressBufferMultiplier sizes the progress channel per task so slow
// displays rarely block workers.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/bitexact/internal/crosscheck"

// Check pairs a kind and workload with the oracles to compare.
type Check struct {
	Kind     Kind
	Workload Workload
	Oracles  []Oracle
}

// BuildChecks creates one check per kind, keeping only the oracles that
// support it. Kinds no oracle supports are skipped.
func BuildChecks(kinds []Kind, w Workload, oracles []Oracle) []Check {
	var checks []Check
	for _, k := range kinds {
		c := Check{Kind: k, Workload: w}
		for _, o := range oracles {
			if o.Supports(k) {
				c.Oracles = append(c.Oracles, o)
			}
		}
		if len(c.Oracles) > 0 {
			checks = append(checks, c)
		}
	}
	return checks
}

// CheckResult is the outcome of one oracle over one check's workload.
type CheckResult struct {
	Check  Kind
	Oracle string
	// Digest is the xxhash of every case output in order.
	Digest uint64
	// CaseDigests holds the xxhash of each case output, to locate the
	// first disagreement.
	CaseDigests []uint64
	Duration    time.Duration
	Err         error
}

// Option configures ExecuteChecks.
type Option func(*runOptions)

type runOptions struct {
	recorder *metrics.Recorder
	logger   logging.Logger
}

// WithRecorder records per-oracle metrics into rec.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(o *runOptions) { o.recorder = rec }
}

// WithLogger logs oracle completions to l.
func WithLogger(l logging.Logger) Option {
	return func(o *runOptions) { o.logger = l }
}

// ExecuteChecks runs every oracle of every check concurrently and returns
// one result per (check, oracle) pair, in check then oracle order. Progress
// updates are indexed in the same order.
func ExecuteChecks(ctx context.Context, checks []Check, reporter ProgressReporter, out io.Writer, opts ...Option) []CheckResult {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}

	type task struct {
		kind   Kind
		oracle Oracle
		cases  []Case
	}
	var tasks []task
	for _, c := range checks {
		cases := c.Workload.Cases(c.Kind)
		for _, o := range c.Oracles {
			tasks = append(tasks, task{kind: c.Kind, oracle: o, cases: cases})
		}
	}

	results := make([]CheckResult, len(tasks))
	progressChan := make(chan ProgressUpdate, len(tasks)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(tasks), out)

	tracer := otel.Tracer(tracerName)
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range tasks {
		g.Go(func() error {
			results[i] = runOracle(ctx, tracer, t.kind, t.oracle, t.cases, i, progressChan)
			r := results[i]
			ro.recorder.ObserveOracle(string(r.Check), r.Oracle, r.Duration, len(r.CaseDigests), r.Err)
			if ro.logger != nil {
				ro.logger.Debug("oracle finished",
					logging.String("check", string(r.Check)),
					logging.String("oracle", r.Oracle),
					logging.Duration("duration", r.Duration),
					logging.Uint64("digest", r.Digest))
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()
	return results
}

// runOracle evaluates every case with one oracle. It stops at the first
// error or when ctx is done.
func runOracle(ctx context.Context, tracer trace.Tracer, kind Kind, o Oracle, cases []Case, idx int, progressChan chan<- ProgressUpdate) CheckResult {
	ctx, span := tracer.Start(ctx, "crosscheck."+string(kind), trace.WithAttributes(
		attribute.String("oracle", o.Name()),
		attribute.Int("cases", len(cases)),
	))
	defer span.End()

	res := CheckResult{Check: kind, Oracle: o.Name(), CaseDigests: make([]uint64, 0, len(cases))}
	start := time.Now()
	d := xxhash.New()
	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		out, err := safeCompute(o, kind, c)
		if err != nil {
			res.Err = apperrors.CheckError{Check: string(kind), Cause: fmt.Errorf("oracle %s, case %d: %w", o.Name(), i, err)}
			break
		}
		_, _ = d.Write(out)
		res.CaseDigests = append(res.CaseDigests, xxhash.Sum64(out))
		select {
		case progressChan <- ProgressUpdate{Index: idx, Value: float64(i+1) / float64(len(cases))}:
		case <-ctx.Done():
		}
	}
	res.Duration = time.Since(start)
	res.Digest = d.Sum64()

	span.SetAttributes(attribute.String("digest", fmt.Sprintf("%016x", res.Digest)))
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	}
	return res
}

// safeCompute turns a panicking oracle into an error so one broken oracle
// cannot take the whole run down.
func safeCompute(o Oracle, kind Kind, c Case) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return o.Compute(kind, c)
}
