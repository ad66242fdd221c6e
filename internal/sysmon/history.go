package sysmon

// History is a fixed-capacity circular buffer of samples, oldest first.
type History struct {
	data  []float64
	head  int
	count int
}

// NewHistory creates a history holding up to capacity samples (at least 1).
func NewHistory(capacity int) *History {
	return &History{data: make([]float64, max(capacity, 1))}
}

// Push adds a sample, overwriting the oldest if full.
func (h *History) Push(v float64) {
	h.data[h.head] = v
	h.head = (h.head + 1) % len(h.data)
	h.count = min(h.count+1, len(h.data))
}

// Len returns the number of samples held.
func (h *History) Len() int { return h.count }

// Cap returns the capacity.
func (h *History) Cap() int { return len(h.data) }

// Last returns the most recent sample, or 0 if empty.
func (h *History) Last() float64 {
	if h.count == 0 {
		return 0
	}
	return h.data[(h.head-1+len(h.data))%len(h.data)]
}

// Values returns the samples in chronological order, or nil if empty.
func (h *History) Values() []float64 {
	if h.count == 0 {
		return nil
	}
	out := make([]float64, h.count)
	start := (h.head - h.count + len(h.data)) % len(h.data)
	for i := range out {
		out[i] = h.data[(start+i)%len(h.data)]
	}
	return out
}

// Resize changes the capacity, keeping the most recent samples that fit.
func (h *History) Resize(capacity int) {
	capacity = max(capacity, 1)
	if capacity == len(h.data) {
		return
	}
	old := h.Values()
	*h = History{data: make([]float64, capacity)}
	for _, v := range old[max(0, len(old)-capacity):] {
		h.Push(v)
	}
}

// Reset drops all samples.
func (h *History) Reset() {
	h.head, h.count = 0, 0
}
