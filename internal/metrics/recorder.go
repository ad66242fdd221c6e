package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Namespace prefixes every metric this package registers.
const Namespace = "bitexact"

// Recorder owns a Prometheus registry and the cross-check metrics recorded
// into it. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	checks     *prometheus.CounterVec
	cases      *prometheus.CounterVec
	mismatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with a private registry that also exports
// the Go runtime and process collectors plus the heap gauges of mc.
func NewRecorder(mc *MemoryCollector) *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "checks_total",
			Help:      "Oracle runs by check, oracle and outcome.",
		}, []string{"check", "oracle", "status"}),
		cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cases_total",
			Help:      "Operand pairs evaluated by check and oracle.",
		}, []string{"check", "oracle"}),
		mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "mismatches_total",
			Help:      "Oracles disagreeing with the reference, by check and oracle.",
		}, []string{"check", "oracle"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "oracle_duration_seconds",
			Help:      "Wall time of one oracle over a whole workload.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"check", "oracle"}),
	}
	reg.MustRegister(
		r.checks, r.cases, r.mismatches, r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if mc != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Bytes of allocated heap objects.",
		}, func() float64 { return float64(mc.Snapshot().HeapAlloc) }))
	}
	return r
}

// Registry exposes the underlying registry for HTTP export and for callers
// registering their own collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveOracle records one finished oracle run.
func (r *Recorder) ObserveOracle(check, oracle string, d time.Duration, cases int, err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.checks.WithLabelValues(check, oracle, status).Inc()
	r.cases.WithLabelValues(check, oracle).Add(float64(cases))
	r.duration.WithLabelValues(check, oracle).Observe(d.Seconds())
}

// IncMismatch records an oracle that disagreed with the reference.
func (r *Recorder) IncMismatch(check, oracle string) {
	if r == nil {
		return
	}
	r.mismatches.WithLabelValues(check, oracle).Inc()
}
