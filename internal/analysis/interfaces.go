package analysis

import (
	"time"

	"github.com/logreen/gridsum/internal/bench"
	"github.com/logreen/gridsum/internal/dataset"
)

// ReportRow is one line of the comparison report: both strategies measured
// against a single input size.
type ReportRow struct {
	// Size is the number of values in the benchmarked sequence.
	Size int
	// ExhaustiveAvg is the exhaustive-scan average time over the run count.
	ExhaustiveAvg time.Duration
	// LookupAvg is the single-pass-lookup average time over the run count.
	LookupAvg time.Duration
	// Speedup is ExhaustiveAvg divided by LookupAvg. Meaningless when
	// Unbounded is set.
	Speedup float64
	// Unbounded marks a lookup average that measured as exactly zero
	// (clock resolution), where the ratio is undefined.
	Unbounded bool
	// Agreement is true only when both strategies produced the same
	// found pair. Two absent results do not count as agreement: nothing
	// was cross-verified.
	Agreement bool
}

// Observer receives analysis lifecycle events. Implementations must be cheap:
// callbacks run on the measurement goroutine between timed sections, never
// inside them.
type Observer interface {
	// AnalysisStarted fires once, before the first size.
	AnalysisStarted(target int64, sources []dataset.Source)
	// SizeStarted fires before a size's sequence is loaded.
	SizeStarted(size int)
	// StrategyMeasured fires after one strategy finishes its runs.
	StrategyMeasured(size int, m bench.Measurement)
	// SizeSkipped fires when a size produced no row. reason is
	// human-readable ("source unavailable", "empty sequence").
	SizeSkipped(size int, reason string)
	// RowCompleted fires when a size produced a report row.
	RowCompleted(row ReportRow)
	// AnalysisFinished fires once, after the last size.
	AnalysisFinished(rows []ReportRow)
}

// NullObserver ignores every event.
type NullObserver struct{}

// AnalysisStarted ignores the event.
func (NullObserver) AnalysisStarted(int64, []dataset.Source) {}

// SizeStarted ignores the event.
func (NullObserver) SizeStarted(int) {}

// StrategyMeasured ignores the event.
func (NullObserver) StrategyMeasured(int, bench.Measurement) {}

// SizeSkipped ignores the event.
func (NullObserver) SizeSkipped(int, string) {}

// RowCompleted ignores the event.
func (NullObserver) RowCompleted(ReportRow) {}

// AnalysisFinished ignores the event.
func (NullObserver) AnalysisFinished([]ReportRow) {}

// MultiObserver fans each event out to several observers in order.
type MultiObserver []Observer

// AnalysisStarted forwards the event to all observers.
func (m MultiObserver) AnalysisStarted(target int64, sources []dataset.Source) {
	for _, o := range m {
		o.AnalysisStarted(target, sources)
	}
}

// SizeStarted forwards the event to all observers.
func (m MultiObserver) SizeStarted(size int) {
	for _, o := range m {
		o.SizeStarted(size)
	}
}

// StrategyMeasured forwards the event to all observers.
func (m MultiObserver) StrategyMeasured(size int, meas bench.Measurement) {
	for _, o := range m {
		o.StrategyMeasured(size, meas)
	}
}

// SizeSkipped forwards the event to all observers.
func (m MultiObserver) SizeSkipped(size int, reason string) {
	for _, o := range m {
		o.SizeSkipped(size, reason)
	}
}

// RowCompleted forwards the event to all observers.
func (m MultiObserver) RowCompleted(row ReportRow) {
	for _, o := range m {
		o.RowCompleted(row)
	}
}

// AnalysisFinished forwards the event to all observers.
func (m MultiObserver) AnalysisFinished(rows []ReportRow) {
	for _, o := range m {
		o.AnalysisFinished(rows)
	}
}
