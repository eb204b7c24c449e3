package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the briefing pipeline.
type Metrics struct {
	RequestsConsumed prometheus.Counter
	ResultsProduced  prometheus.Counter
	BriefingErrors   prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Advisory history metrics.
	HistorySaves   *prometheus.CounterVec // labels: outcome={success,error}
	HistoryEnabled prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "briefing_engine",
			Name:      "requests_consumed_total",
			Help:      "Total briefing requests read from the source topic.",
		}),
		ResultsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "briefing_engine",
			Name:      "results_produced_total",
			Help:      "Total briefing results written to the sink topic.",
		}),
		BriefingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "briefing_engine",
			Name:      "briefing_errors_total",
			Help:      "Total briefing runs that failed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "briefing_engine",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "briefing_engine",
			Name:      "batch_size",
			Help:      "Number of requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "briefing_engine",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		HistorySaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "briefing_engine",
			Name:      "history_saves_total",
			Help:      "Advisory-history writes by outcome.",
		}, []string{"outcome"}),
		HistoryEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "briefing_engine",
			Name:      "history_enabled",
			Help:      "1 when advisory history persistence is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RequestsConsumed,
		m.ResultsProduced,
		m.BriefingErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.HistorySaves,
		m.HistoryEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "briefing_engine", Name: "requests_consumed_total"}),
		ResultsProduced:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "briefing_engine", Name: "results_produced_total"}),
		BriefingErrors:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "briefing_engine", Name: "briefing_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "briefing_engine", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "briefing_engine", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "briefing_engine", Name: "batch_processing_duration_seconds"}),
		HistorySaves:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "briefing_engine", Name: "history_saves_total"}, []string{"outcome"}),
		HistoryEnabled:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "briefing_engine", Name: "history_enabled"}),
	}
}
