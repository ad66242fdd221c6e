package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Process exit codes. Scripts driving bitexact in CI branch on these.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3   // an oracle disagreed with the reference
	ExitErrorConfig   = 4   // invalid flags, environment or oracle selection
	ExitErrorCanceled = 130 // SIGINT, as shells report it
)

// ConfigError reports invalid user input: flags, environment overrides or
// an oracle selection that cannot run.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError returns a ConfigError with a fmt.Sprintf message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CheckError attributes a failure to the check during which it happened.
type CheckError struct {
	// Check names the check that failed.
	Check string
	// Cause is the underlying error that triggered this check error.
	Cause error
}

func (e CheckError) Error() string {
	if e.Check == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("check %s: %v", e.Check, e.Cause)
}

func (e CheckError) Unwrap() error { return e.Cause }

// TimeoutError reports an operation that exceeded its own time limit, as
// opposed to the run-wide deadline carried by the context.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError reports a malformed value: an unparsable literal, a float
// with no exact value, inconsistent thresholds.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MismatchError reports that an oracle produced a result different from the
// reference result of a check.
type MismatchError struct {
	// Check is the name of the check whose oracles disagreed.
	Check string
	// Oracle is the name of the oracle that disagreed with the reference.
	Oracle string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("check %q: oracle %q disagrees with the reference result", e.Check, e.Oracle)
}

// UnsupportedError is returned by conversions that are deliberately not
// provided because their result could not be exact. It is permanent:
// retrying with the same input fails the same way.
type UnsupportedError struct {
	// Operation names the unsupported conversion.
	Operation string
}

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported operation: %s", e.Operation)
}

// PreconditionError is the panic value of arithmetic operations called with
// arguments outside their domain, such as a zero divisor or a negative shift.
// It reports a programming error and is never returned as an error value.
type PreconditionError struct {
	// Op is the operation whose precondition was violated.
	Op string
	// Message describes the violated precondition.
	Message string
}

func (e PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// WrapError prefixes err with a formatted context, keeping it reachable
// through errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err comes from a canceled or expired
// context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// HandleCheckError prints a one-line description of err to out and returns
// the matching exit code. timeout is the run-wide limit, quoted when the
// context deadline expired. A nil error yields ExitSuccess.
func HandleCheckError(err error, timeout time.Duration, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		mismatchErr MismatchError
		configErr   ConfigError
		timeoutErr  TimeoutError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Run exceeded the timeout of %s.\n", timeout)
		return ExitErrorTimeout
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%v\n", timeoutErr)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(out, "Run canceled by user.")
		return ExitErrorCanceled
	case errors.As(err, &mismatchErr):
		fmt.Fprintf(out, "Critical error: %v\n", mismatchErr)
		return ExitErrorMismatch
	case errors.As(err, &configErr):
		fmt.Fprintf(out, "Configuration error: %v\n", configErr)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Error: %v\n", err)
	return ExitErrorGeneric
}
