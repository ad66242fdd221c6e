package crosscheck

import (
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/metrics"
)

// ResultPresenter displays the per-oracle outcome of a run.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per (check, oracle) result.
	PresentComparisonTable(results []CheckResult, out io.Writer)
	// PresentMismatches details every disagreement found.
	PresentMismatches(mismatches []Mismatch, out io.Writer)
}

// ErrorHandler maps a failed run to an exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// Mismatch is an oracle whose digest differs from the reference of its
// check.
type Mismatch struct {
	Check     Kind
	Oracle    string
	Reference string
	// Case is the index of the first differing case, or -1 if the oracle
	// completed a different number of cases.
	Case int
}

// Err returns the mismatch as an error.
func (m Mismatch) Err() error {
	return apperrors.MismatchError{Check: string(m.Check), Oracle: m.Oracle}
}

// reference picks the result other oracles of the same check are compared
// with: math/big when it succeeded, otherwise the first success.
func reference(results []CheckResult) *CheckResult {
	var first *CheckResult
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if r.Oracle == ReferenceOracle {
			return r
		}
		if first == nil {
			first = r
		}
	}
	return first
}

// groupByCheck splits results into per-check runs, preserving order.
func groupByCheck(results []CheckResult) [][]CheckResult {
	var groups [][]CheckResult
	for start := 0; start < len(results); {
		end := start + 1
		for end < len(results) && results[end].Check == results[start].Check {
			end++
		}
		groups = append(groups, results[start:end])
		start = end
	}
	return groups
}

// FindMismatches compares every successful result with its check's
// reference. Failed oracles are not mismatches.
func FindMismatches(results []CheckResult) []Mismatch {
	var out []Mismatch
	for _, group := range groupByCheck(results) {
		ref := reference(group)
		if ref == nil {
			continue
		}
		for _, r := range group {
			if r.Err != nil || r.Oracle == ref.Oracle || r.Digest == ref.Digest {
				continue
			}
			out = append(out, Mismatch{Check: r.Check, Oracle: r.Oracle, Reference: ref.Oracle, Case: firstDifference(ref.CaseDigests, r.CaseDigests)})
		}
	}
	return out
}

func firstDifference(a, b []uint64) int {
	for i := 0; i < min(len(a), len(b)); i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return -1
}

// AnalyzeResults presents the results and returns the run's exit code:
// ExitErrorMismatch if any oracle disagrees, the handler's code if any
// oracle failed, ExitSuccess otherwise. Mismatches are also counted in rec.
func AnalyzeResults(results []CheckResult, presenter ResultPresenter, handler ErrorHandler, rec *metrics.Recorder, out io.Writer) int {
	presenter.PresentComparisonTable(results, out)

	if len(results) == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No oracle was selected.\n")
		return apperrors.ExitErrorConfig
	}

	mismatches := FindMismatches(results)
	for _, m := range mismatches {
		rec.IncMismatch(string(m.Check), m.Oracle)
	}
	if len(mismatches) > 0 {
		presenter.PresentMismatches(mismatches, out)
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %d oracle(s) disagree with the reference.\n", len(mismatches))
		return apperrors.ExitErrorMismatch
	}

	var firstErr error
	var total time.Duration
	for _, r := range results {
		total += r.Duration
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
		}
	}
	if firstErr != nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. At least one oracle could not complete its workload.\n")
		return handler.HandleError(firstErr, total, out)
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All oracles agree bit for bit.\n")
	return apperrors.ExitSuccess
}
