package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the dashboard engine.
type Metrics struct {
	DatasetRecords  prometheus.Gauge
	FilterRequests  prometheus.Counter
	EmptyResults    prometheus.Counter
	InvalidCriteria prometheus.Counter

	RecomputeDuration prometheus.Histogram
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetRecords,
		m.FilterRequests,
		m.EmptyResults,
		m.InvalidCriteria,
		m.RecomputeDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics with no registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "accidents",
			Name:      "dataset_records",
			Help:      "Number of records in the cached derived dataset.",
		}),
		FilterRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accidents",
			Name:      "filter_requests_total",
			Help:      "Total filter recomputations requested.",
		}),
		EmptyResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accidents",
			Name:      "empty_results_total",
			Help:      "Filter recomputations that matched zero records.",
		}),
		InvalidCriteria: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accidents",
			Name:      "invalid_criteria_total",
			Help:      "Filter requests rejected at criteria validation.",
		}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "accidents",
			Name:      "recompute_duration_seconds",
			Help:      "Duration of a full filter-and-aggregate recomputation.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}
