package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/bitexact/internal/metrics"
)

// Metrics holds the HTTP-level metrics of the endpoint and the exposition
// handler for the recorder's registry.
type Metrics struct {
	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
	handler        http.Handler
}

// NewMetrics registers the HTTP metrics on rec's registry. A nil rec gets a
// fresh one.
func NewMetrics(rec *metrics.Recorder) *Metrics {
	if rec == nil {
		rec = metrics.NewRecorder(metrics.NewMemoryCollector())
	}
	m := &Metrics{
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served, by path.",
		}, []string{"path"}),
	}
	for _, path := range []string{"/metrics", "/healthz"} {
		m.requestsTotal.WithLabelValues(path)
	}
	reg := rec.Registry()
	reg.MustRegister(m.activeRequests, m.requestsTotal)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// WritePrometheus serves the text exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
