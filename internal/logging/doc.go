// Package logging provides a unified logging interface for the cross-check
// harness. It abstracts the underlying logging implementation (zerolog, or
// the standard library logger for embedding callers) so that the harness,
// calibration and app layers log structured fields consistently.
package logging
