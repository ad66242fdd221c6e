package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps displayed estimates; beyond a day the figure is noise.
const maxETA = 24 * time.Hour

// etaSmoothing is the weight of the newest rate sample in the moving
// average.
const etaSmoothing = 0.3

// ProgressState tracks the progress of concurrent tasks and exposes their
// average.
type ProgressState struct {
	progresses []float64
	numTasks   int
}

// NewProgressState creates a state tracking numTasks tasks.
func NewProgressState(numTasks int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, max(numTasks, 0)),
		numTasks:   numTasks,
	}
}

// Update records the progress (0.0 to 1.0) of task index. Out-of-range
// indices are ignored and values are clamped.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = min(max(value, 0), 1)
	}
}

// CalculateAverage returns the mean progress across all tasks.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numTasks <= 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numTasks)
}

// ProgressWithETA extends ProgressState with a smoothed completion rate
// and the derived time remaining.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	progressRate float64 // average progress per second
}

// NewProgressWithETA creates a tracker for numTasks tasks, starting its
// clock now.
func NewProgressWithETA(numTasks int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numTasks),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records a progress value and returns the new average and
// the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		rate := avg / elapsed
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = etaSmoothing*rate + (1-etaSmoothing)*p.progressRate
		}
	}
	return avg, p.GetETA()
}

// GetETA returns the estimated time remaining, or 0 while no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders an estimate compactly ("45s", "2m30s", "1h15m").
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m, s := int(eta.Minutes()), int(eta.Seconds())%60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h, m := int(eta.Hours()), int(eta.Minutes())%60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders progress (clamped to [0, 1]) as a bar of length runes.
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA renders "pct% [bar] ETA: eta".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", min(max(progress, 0), 1)*100, ProgressBar(progress, width), FormatETA(eta))
}
