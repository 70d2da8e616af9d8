// Package metrics exposes analysis counters and timing distributions as
// Prometheus collectors. The collector plugs into the analysis observer
// pipeline, so instrumenting a run costs one observer registration.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/logreen/gridsum/internal/analysis"
	"github.com/logreen/gridsum/internal/bench"
	"github.com/logreen/gridsum/internal/dataset"
)

// Collector implements analysis.Observer, translating analysis events into
// Prometheus metrics. Each Collector owns its registry so tests and repeated
// runs never collide on global registration.
type Collector struct {
	analysis.NullObserver

	registry *prometheus.Registry

	runsTotal          *prometheus.CounterVec
	runDuration        *prometheus.HistogramVec
	rowsTotal          prometheus.Counter
	skipsTotal         *prometheus.CounterVec
	disagreementsTotal prometheus.Counter
	sequenceSize       prometheus.Gauge
}

// Verify interface compliance.
var _ analysis.Observer = (*Collector)(nil)

// NewCollector creates a Collector with a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridsum_strategy_runs_total",
			Help: "Number of timed strategy executions, by strategy.",
		}, []string{"strategy"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "gridsum_strategy_run_duration_seconds",
			Help: "Average per-run duration of each measurement, by strategy.",
			// Sub-microsecond lookups through multi-second quadratic scans.
			Buckets: prometheus.ExponentialBuckets(1e-7, 10, 9),
		}, []string{"strategy"}),
		rowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridsum_report_rows_total",
			Help: "Number of report rows emitted.",
		}),
		skipsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridsum_sizes_skipped_total",
			Help: "Number of input sizes skipped, by reason.",
		}, []string{"reason"}),
		disagreementsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridsum_strategy_disagreements_total",
			Help: "Number of report rows without a verified matching pair.",
		}),
		sequenceSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gridsum_current_sequence_size",
			Help: "Size of the sequence currently being benchmarked.",
		}),
	}

	c.registry.MustRegister(
		c.runsTotal,
		c.runDuration,
		c.rowsTotal,
		c.skipsTotal,
		c.disagreementsTotal,
		c.sequenceSize,
	)
	return c
}

// Registry returns the collector's Prometheus registry for exposition.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// AnalysisStarted resets the current-size gauge.
func (c *Collector) AnalysisStarted(_ int64, _ []dataset.Source) {
	c.sequenceSize.Set(0)
}

// SizeStarted records the size under measurement.
func (c *Collector) SizeStarted(size int) {
	c.sequenceSize.Set(float64(size))
}

// StrategyMeasured counts the runs and observes the average duration.
func (c *Collector) StrategyMeasured(_ int, m bench.Measurement) {
	c.runsTotal.WithLabelValues(m.Strategy).Add(float64(m.Runs))
	c.runDuration.WithLabelValues(m.Strategy).Observe(m.Average.Seconds())
}

// SizeSkipped counts the skip under its reason.
func (c *Collector) SizeSkipped(_ int, reason string) {
	c.skipsTotal.WithLabelValues(reason).Inc()
}

// RowCompleted counts the row and any disagreement.
func (c *Collector) RowCompleted(row analysis.ReportRow) {
	c.rowsTotal.Inc()
	if !row.Agreement {
		c.disagreementsTotal.Inc()
	}
}
