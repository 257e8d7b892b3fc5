package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report refresh loop.
type Metrics struct {
	RowsIngested prometheus.Counter
	RowsDropped  prometheus.Counter

	ReportBuilds     prometheus.Counter
	BuildErrors      prometheus.Counter
	ReportsPublished prometheus.Counter

	RefresherRunning prometheus.Gauge
	ReportReady      prometheus.Gauge

	FetchDuration prometheus.Histogram
	BuildDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tick_report",
			Name:      "rows_ingested_total",
			Help:      "Total CSV rows read from the tick export.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tick_report",
			Name:      "rows_dropped_total",
			Help:      "Total rows dropped for failing the validity invariant.",
		}),
		ReportBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tick_report",
			Name:      "report_builds_total",
			Help:      "Total successful report builds.",
		}),
		BuildErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tick_report",
			Name:      "build_errors_total",
			Help:      "Total failed refresh cycles (fetch or parse failures).",
		}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tick_report",
			Name:      "reports_published_total",
			Help:      "Total reports published to the sink topic.",
		}),
		RefresherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tick_report",
			Name:      "refresher_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
		ReportReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tick_report",
			Name:      "report_ready",
			Help:      "1 once a report has been built and is being served.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tick_report",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the tick CSV fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tick_report",
			Name:      "build_duration_seconds",
			Help:      "Duration of a complete fetch-parse-aggregate cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.RowsIngested,
		m.RowsDropped,
		m.ReportBuilds,
		m.BuildErrors,
		m.ReportsPublished,
		m.RefresherRunning,
		m.ReportReady,
		m.FetchDuration,
		m.BuildDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsIngested:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tick_report", Name: "rows_ingested_total"}),
		RowsDropped:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tick_report", Name: "rows_dropped_total"}),
		ReportBuilds:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tick_report", Name: "report_builds_total"}),
		BuildErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tick_report", Name: "build_errors_total"}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tick_report", Name: "reports_published_total"}),
		RefresherRunning: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "tick_report", Name: "refresher_running"}),
		ReportReady:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "tick_report", Name: "report_ready"}),
		FetchDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "tick_report", Name: "fetch_duration_seconds"}),
		BuildDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "tick_report", Name: "build_duration_seconds"}),
	}
}
