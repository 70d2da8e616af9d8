package analysis

import (
	"context"
	"time"

	"github.com/logreen/gridsum/internal/bench"
	"github.com/logreen/gridsum/internal/dataset"
	"github.com/logreen/gridsum/internal/logging"
	"github.com/logreen/gridsum/internal/pairsum"
)

// Analyzer runs the full strategy comparison across a set of input sources.
//
// Measurement is strictly sequential: one size at a time, one strategy at a
// time, each strategy's runs back to back. Sequences are loaded fresh per
// size and discarded afterwards; no state crosses sizes, so re-running the
// whole analysis is idempotent.
type Analyzer struct {
	loader     dataset.Loader
	exhaustive pairsum.Finder
	lookup     pairsum.Finder
	runs       int
	logger     logging.Logger
	observer   Observer
}

// Option configures an Analyzer during construction.
type Option func(*Analyzer)

// WithLoader substitutes the sequence loader. Defaults to dataset.CSVLoader.
func WithLoader(l dataset.Loader) Option {
	return func(a *Analyzer) { a.loader = l }
}

// WithRuns sets the per-strategy run count. Defaults to bench.DefaultRuns.
func WithRuns(runs int) Option {
	return func(a *Analyzer) { a.runs = runs }
}

// WithLogger sets the diagnostic logger. Defaults to a no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithObserver sets the lifecycle observer. Defaults to NullObserver.
// Compose several with MultiObserver.
func WithObserver(o Observer) Option {
	return func(a *Analyzer) { a.observer = o }
}

// New creates an Analyzer comparing the two given strategies.
// The exhaustive strategy is the reference; lookup is the candidate whose
// speedup is reported relative to it.
func New(exhaustive, lookup pairsum.Finder, opts ...Option) *Analyzer {
	a := &Analyzer{
		loader:     dataset.CSVLoader{},
		exhaustive: exhaustive,
		lookup:     lookup,
		runs:       bench.DefaultRuns,
		logger:     logging.NopLogger{},
		observer:   NullObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run analyzes every source in order and returns the report rows, one per
// successfully loaded size. Sources that cannot be loaded, or that load
// empty, are skipped with a diagnostic; the analysis continues.
//
// The context is consulted between sizes only. Measurements themselves are
// not interruptible: a partially timed size would be meaningless.
func (a *Analyzer) Run(ctx context.Context, sources []dataset.Source, target int64) ([]ReportRow, error) {
	a.observer.AnalysisStarted(target, sources)
	a.logger.Info("analysis started",
		logging.Int64("target", target),
		logging.Int("sources", len(sources)),
		logging.Int("runs", a.runs),
	)

	rows := make([]ReportRow, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			a.observer.AnalysisFinished(rows)
			return rows, err
		}

		row, ok := a.analyzeSource(src, target)
		if !ok {
			continue
		}
		rows = append(rows, row)
		a.observer.RowCompleted(row)
	}

	a.observer.AnalysisFinished(rows)
	a.logger.Info("analysis finished", logging.Int("rows", len(rows)))
	return rows, nil
}

// analyzeSource benchmarks both strategies against one source. It returns
// false when the size was skipped.
func (a *Analyzer) analyzeSource(src dataset.Source, target int64) (ReportRow, bool) {
	a.observer.SizeStarted(src.Size)

	values, err := a.loader.Load(src.Path)
	if err != nil {
		a.logger.Warn("skipping size: source unavailable",
			logging.Int("size", src.Size),
			logging.String("path", src.Path),
			logging.Err(err),
		)
		a.observer.SizeSkipped(src.Size, "source unavailable")
		return ReportRow{}, false
	}
	if len(values) == 0 {
		a.logger.Warn("skipping size: empty sequence",
			logging.Int("size", src.Size),
			logging.String("path", src.Path),
		)
		a.observer.SizeSkipped(src.Size, "empty sequence")
		return ReportRow{}, false
	}

	exhaustive := bench.Run(a.exhaustive, values, target, a.runs)
	a.observer.StrategyMeasured(src.Size, exhaustive)

	lookup := bench.Run(a.lookup, values, target, a.runs)
	a.observer.StrategyMeasured(src.Size, lookup)

	speedup, unbounded := ComputeSpeedup(exhaustive.Average, lookup.Average)
	row := ReportRow{
		Size:          src.Size,
		ExhaustiveAvg: exhaustive.Average,
		LookupAvg:     lookup.Average,
		Speedup:       speedup,
		Unbounded:     unbounded,
		Agreement:     Agree(exhaustive, lookup),
	}

	if !row.Agreement {
		a.logger.Warn("strategies did not produce a verified matching pair",
			logging.Int("size", src.Size),
			logging.String("exhaustive", describeResult(exhaustive)),
			logging.String("lookup", describeResult(lookup)),
		)
	}
	return row, true
}

// ComputeSpeedup returns the ratio of the reference average to the candidate
// average. When the candidate measured as exactly zero the ratio is
// undefined and unbounded is true; the returned ratio is then zero, never
// NaN or Inf.
func ComputeSpeedup(reference, candidate time.Duration) (ratio float64, unbounded bool) {
	if candidate == 0 {
		return 0, true
	}
	return float64(reference) / float64(candidate), false
}

// Agree implements the report's agreement policy: true only when both
// measurements found a pair and the pairs are identical. Two absent results
// are not agreement — nothing was verified, and the report must not suggest
// otherwise.
func Agree(a, b bench.Measurement) bool {
	return a.Found && b.Found && a.Result == b.Result
}

func describeResult(m bench.Measurement) string {
	if !m.Found {
		return "absent"
	}
	return m.Result.String()
}
