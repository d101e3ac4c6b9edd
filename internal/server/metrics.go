package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "heropick"

// Metrics holds the proxy's Prometheus collectors
type Metrics struct {
	// RequestsTotal counts handled requests.
	// Labels: route, status
	RequestsTotal *prometheus.CounterVec

	// UpstreamCallsTotal counts calls to the character API.
	// Labels: op (search, detail), outcome (ok, status code, error)
	UpstreamCallsTotal *prometheus.CounterVec

	// UpstreamDurationSeconds measures upstream latency.
	// Labels: op
	UpstreamDurationSeconds *prometheus.HistogramVec

	// ShortQueriesTotal counts searches answered locally because the query was too short
	ShortQueriesTotal prometheus.Counter
}

// NewMetrics registers the collectors with reg. Tests pass a fresh registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "proxy",
				Name:      "requests_total",
				Help:      "Total HTTP requests handled by the proxy",
			},
			[]string{"route", "status"},
		),
		UpstreamCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "upstream",
				Name:      "calls_total",
				Help:      "Total calls made to the character API",
			},
			[]string{"op", "outcome"},
		),
		UpstreamDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "upstream",
				Name:      "duration_seconds",
				Help:      "Latency of calls to the character API",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"op"},
		),
		ShortQueriesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "proxy",
				Name:      "short_queries_total",
				Help:      "Searches answered with an empty list without contacting the upstream",
			},
		),
	}
}
