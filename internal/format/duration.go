// Package format holds the display helpers shared by the CLI and the TUI:
// durations, byte sizes, digit grouping and progress bars with ETA.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders d at a precision suited to its
// magnitude: whole microseconds below 1ms, whole milliseconds below 1s and
// time.Duration's own format beyond.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
