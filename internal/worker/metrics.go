package worker

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the worker's Prometheus instruments on a private registry so
// tests can gather them in isolation.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal       *prometheus.CounterVec
	RunDuration     prometheus.Histogram
	RecordsAnalyzed prometheus.Gauge
	Recommendations prometheus.Gauge
}

// NewMetrics creates and registers the worker metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betform_runs_total",
				Help: "Total analysis runs by result",
			},
			[]string{"result"},
		),

		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "betform_run_duration_seconds",
				Help:    "Duration of one export+analyze run in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),

		RecordsAnalyzed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "betform_records_analyzed",
				Help: "Number of opportunity records in the last completed run",
			},
		),

		Recommendations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "betform_recommendations",
				Help: "Number of recommendations triggered by the last completed run",
			},
		),
	}

	m.registry.MustRegister(m.RunsTotal, m.RunDuration, m.RecordsAnalyzed, m.Recommendations)
	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry so tests can gather the metric
// families directly.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
