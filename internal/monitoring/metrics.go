package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ScansTotal       *prometheus.CounterVec
	ImageScansTotal  *prometheus.CounterVec
	ErrorsTotal      *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		ScansTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scamradar_url_scans_total",
			Help: "The total number of URL analyses performed, by verdict label",
		}, []string{"label"}),
		ImageScansTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scamradar_image_scans_total",
			Help: "The total number of image analyses performed, by category",
		}, []string{"category"}),
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scamradar_errors_total",
			Help: "The total number of errors encountered",
		}, []string{"type"}), // e.g., 'invalid_input', 'judge_failed'
		AnalysisDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scamradar_analysis_duration_seconds",
			Help:    "URL analysis latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncScans(label string) {
	m.ScansTotal.WithLabelValues(label).Inc()
}

func (m *Metrics) IncImageScans(category string) {
	m.ImageScansTotal.WithLabelValues(category).Inc()
}

func (m *Metrics) IncErrors(errorType string) {
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

func (m *Metrics) ObserveAnalysis(kind string, seconds float64) {
	m.AnalysisDuration.WithLabelValues(kind).Observe(seconds)
}
