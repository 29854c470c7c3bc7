package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus instrumentation on a private registry
// so multiple servers (and tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	reloadsTotal     *prometheus.CounterVec
}

// NewMetrics creates and registers the metric set.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "readyspec_analyses_total",
			Help: "Completed analyses by readiness level.",
		}, []string{"level"}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "readyspec_analysis_duration_seconds",
			Help:    "Wall-clock duration of one analysis.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		reloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "readyspec_catalog_reloads_total",
			Help: "Catalog reload attempts by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(m.analysesTotal, m.analysisDuration, m.reloadsTotal)
	return m
}

// ObserveAnalysis records one completed analysis.
func (m *Metrics) ObserveAnalysis(level string, d time.Duration) {
	m.analysesTotal.WithLabelValues(level).Inc()
	m.analysisDuration.Observe(d.Seconds())
}

// ObserveReload records one catalog reload attempt.
func (m *Metrics) ObserveReload(outcome string) {
	m.reloadsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
