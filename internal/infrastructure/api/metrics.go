package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// clientMetrics instruments the gateway. Disabled metrics keep the nil
// receivers so call sites stay unconditional.
type clientMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func newClientMetrics(enabled bool) *clientMetrics {
	if !enabled {
		return &clientMetrics{}
	}

	m := &clientMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "moodmunch",
				Subsystem: "api_client",
				Name:      "requests_total",
				Help:      "Backend API requests by method, path and outcome",
			},
			[]string{"method", "path", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "moodmunch",
				Subsystem: "api_client",
				Name:      "request_duration_seconds",
				Help:      "Backend API request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	// Re-registration happens in tests that build multiple clients; the
	// already-registered collector is reused in that case.
	if err := prometheus.Register(m.requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			m.requests = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	if err := prometheus.Register(m.latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			m.latency = are.ExistingCollector.(*prometheus.HistogramVec)
		}
	}

	return m
}

func (m *clientMetrics) observe(method, path, outcome string, elapsed time.Duration) {
	if m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, path, outcome).Inc()
	m.latency.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
