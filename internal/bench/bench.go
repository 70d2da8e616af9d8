// Package bench measures the wall-clock runtime of a two-sum strategy by
// running it repeatedly against the same immutable inputs and averaging.
//
// Repetition is the only noise-reduction mechanism: runs execute strictly
// back to back on the calling goroutine, timed with Go's monotonic clock.
// Because strategies are deterministic over immutable inputs, recording only
// the final run's result is sound.
package bench

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/logreen/gridsum/internal/pairsum"
)

// DefaultRuns is the number of back-to-back runs averaged per measurement.
const DefaultRuns = 5

// Histogram bounds: a single search ranges from sub-microsecond (tiny
// sequences) to minutes (degenerate quadratic scans).
const (
	histMinMicros = 1
	histMaxMicros = int64(time.Hour / time.Microsecond)
	histSigFigs   = 3
)

// Measurement is the outcome of benchmarking one strategy against one
// sequence and target.
type Measurement struct {
	// Strategy is the name of the measured finder.
	Strategy string
	// Runs is the number of executions that were averaged.
	Runs int
	// Average is the mean wall-clock time per run.
	Average time.Duration
	// Latencies holds every per-run latency in microseconds, for
	// percentile reporting in verbose output.
	Latencies *hdrhistogram.Histogram
	// Result is the pair produced by the final run.
	Result pairsum.Pair
	// Found reports whether the final run produced a pair.
	Found bool
}

// Percentile returns the latency at the given percentile as a duration.
func (m Measurement) Percentile(p float64) time.Duration {
	if m.Latencies == nil {
		return 0
	}
	return time.Duration(m.Latencies.ValueAtQuantile(p)) * time.Microsecond
}

// Run benchmarks finder against the given sequence and target.
//
// It executes the strategy runs times (DefaultRuns when runs <= 0), timing
// each execution individually, and returns the average together with the
// final run's result. The input slice is never mutated.
func Run(finder pairsum.Finder, values []int64, target int64, runs int) Measurement {
	if runs <= 0 {
		runs = DefaultRuns
	}

	hist := hdrhistogram.New(histMinMicros, histMaxMicros, histSigFigs)
	var total time.Duration
	var result pairsum.Pair
	var found bool

	for r := 0; r < runs; r++ {
		start := time.Now()
		result, found = finder.Find(values, target)
		elapsed := time.Since(start)

		total += elapsed
		// RecordValue only fails outside the configured bounds; clamp
		// instead of losing the sample.
		if err := hist.RecordValue(elapsed.Microseconds()); err != nil {
			_ = hist.RecordValue(histMaxMicros)
		}
	}

	return Measurement{
		Strategy:  finder.Name(),
		Runs:      runs,
		Average:   total / time.Duration(runs),
		Latencies: hist,
		Result:    result,
		Found:     found,
	}
}
