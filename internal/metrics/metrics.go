package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for SPARC
type Metrics struct {
	// Generation counters
	GenerationsTotal       *prometheus.CounterVec
	GenerationDurationSecs prometheus.Histogram

	// Publish counters
	PublishAttemptsTotal *prometheus.CounterVec

	// Analytics counters
	MetricsRecordedTotal *prometheus.CounterVec

	// API metrics
	APIRequestsTotal          *prometheus.CounterVec
	APIRequestDurationSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sparc_generations_total",
				Help: "Total number of content generation calls by outcome",
			},
			[]string{"status"},
		),
		GenerationDurationSecs: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sparc_generation_duration_seconds",
				Help:    "Duration of content generation calls",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
			},
		),
		PublishAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sparc_publish_attempts_total",
				Help: "Total number of publish attempts by platform and outcome",
			},
			[]string{"platform", "status"},
		),
		MetricsRecordedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sparc_analytics_records_total",
				Help: "Total number of analytics records appended by metric name",
			},
			[]string{"metric"},
		),
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sparc_api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		APIRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sparc_api_request_duration_seconds",
				Help:    "Duration of API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.GenerationsTotal,
		m.GenerationDurationSecs,
		m.PublishAttemptsTotal,
		m.MetricsRecordedTotal,
		m.APIRequestsTotal,
		m.APIRequestDurationSeconds,
	)

	return m
}

// Registry returns the underlying Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
