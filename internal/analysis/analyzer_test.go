package analysis

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logreen/gridsum/internal/bench"
	"github.com/logreen/gridsum/internal/dataset"
	apperrors "github.com/logreen/gridsum/internal/errors"
	"github.com/logreen/gridsum/internal/logging"
	"github.com/logreen/gridsum/internal/pairsum"
)

// memLoader serves sequences from memory, with optional per-path failures.
type memLoader struct {
	sequences map[string][]int64
	failures  map[string]error
}

func (m memLoader) Load(path string) ([]int64, error) {
	if err, ok := m.failures[path]; ok {
		return nil, err
	}
	return m.sequences[path], nil
}

// recordingObserver captures every event for assertions.
type recordingObserver struct {
	NullObserver
	started  []int
	measured []string
	skipped  map[int]string
	rows     []ReportRow
	finished bool
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{skipped: make(map[int]string)}
}

func (r *recordingObserver) SizeStarted(size int) { r.started = append(r.started, size) }

func (r *recordingObserver) StrategyMeasured(_ int, m bench.Measurement) {
	r.measured = append(r.measured, m.Strategy)
}

func (r *recordingObserver) SizeSkipped(size int, reason string) { r.skipped[size] = reason }

func (r *recordingObserver) RowCompleted(row ReportRow) { r.rows = append(r.rows, row) }

func (r *recordingObserver) AnalysisFinished([]ReportRow) { r.finished = true }

func sourcesFor(sizes ...int) []dataset.Source {
	out := make([]dataset.Source, len(sizes))
	for i, s := range sizes {
		out[i] = dataset.Source{Size: s, Path: pathFor(s)}
	}
	return out
}

func pathFor(size int) string {
	return "mem://" + string(rune('a'+size%26))
}

func newAnalyzer(loader dataset.Loader, obs Observer) *Analyzer {
	return New(
		pairsum.ExhaustiveScan{},
		pairsum.SinglePassLookup{},
		WithLoader(loader),
		WithRuns(2),
		WithObserver(obs),
	)
}

func TestAnalyzer_Run(t *testing.T) {
	loader := memLoader{sequences: map[string][]int64{
		pathFor(4): {2, 7, 11, 15},
		pathFor(3): {1, 2, 4},
	}}
	obs := newRecordingObserver()
	a := newAnalyzer(loader, obs)

	rows, err := a.Run(context.Background(), sourcesFor(3, 4), 9)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	t.Run("rows follow source order", func(t *testing.T) {
		assert.Equal(t, 3, rows[0].Size)
		assert.Equal(t, 4, rows[1].Size)
	})

	t.Run("solved size agrees", func(t *testing.T) {
		assert.True(t, rows[1].Agreement)
	})

	t.Run("both strategies measured per size", func(t *testing.T) {
		assert.Equal(t, []string{"exhaustive", "lookup", "exhaustive", "lookup"}, obs.measured)
	})

	t.Run("observer lifecycle", func(t *testing.T) {
		assert.Equal(t, []int{3, 4}, obs.started)
		assert.True(t, obs.finished)
		assert.Len(t, obs.rows, 2)
	})
}

func TestAnalyzer_BothAbsentIsNotAgreement(t *testing.T) {
	// Policy, not accident: when neither strategy finds a pair there is no
	// verified match to report, so the agreement flag must be false.
	loader := memLoader{sequences: map[string][]int64{
		pathFor(3): {1, 2, 4},
	}}
	a := newAnalyzer(loader, NullObserver{})

	rows, err := a.Run(context.Background(), sourcesFor(3), 100)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Agreement, "two absent results must not count as agreement")
}

func TestAnalyzer_SkipsUnavailableSource(t *testing.T) {
	loader := memLoader{
		sequences: map[string][]int64{pathFor(2): {4, 5}},
		failures:  map[string]error{pathFor(7): apperrors.NewLoadError(pathFor(7), errors.New("no such file"))},
	}
	obs := newRecordingObserver()

	var logBuf bytes.Buffer
	a := New(
		pairsum.ExhaustiveScan{},
		pairsum.SinglePassLookup{},
		WithLoader(loader),
		WithRuns(1),
		WithObserver(obs),
		WithLogger(logging.NewLogger(&logBuf, "analysis")),
	)

	rows, err := a.Run(context.Background(), sourcesFor(7, 2), 9)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Size)
	assert.Equal(t, "source unavailable", obs.skipped[7])
	assert.Contains(t, logBuf.String(), "source unavailable", "skip must be logged")
}

func TestAnalyzer_SkipsEmptySequence(t *testing.T) {
	loader := memLoader{sequences: map[string][]int64{
		pathFor(0): {},
		pathFor(2): {1, 8},
	}}
	obs := newRecordingObserver()
	a := newAnalyzer(loader, obs)

	rows, err := a.Run(context.Background(), sourcesFor(0, 2), 9)
	require.NoError(t, err)

	require.Len(t, rows, 1, "empty source must not produce a row")
	assert.Equal(t, 2, rows[0].Size)
	assert.Equal(t, "empty sequence", obs.skipped[0])
}

func TestAnalyzer_ContextCancellationBetweenSizes(t *testing.T) {
	loader := memLoader{sequences: map[string][]int64{
		pathFor(2): {1, 2},
		pathFor(3): {1, 2, 3},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newAnalyzer(loader, NullObserver{})
	rows, err := a.Run(ctx, sourcesFor(2, 3), 3)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rows)
}

func TestAnalyzer_RerunIsIdempotent(t *testing.T) {
	loader := memLoader{sequences: map[string][]int64{
		pathFor(4): {3, -1, 4, 1},
	}}
	a := newAnalyzer(loader, NullObserver{})

	first, err := a.Run(context.Background(), sourcesFor(4), 3)
	require.NoError(t, err)
	second, err := a.Run(context.Background(), sourcesFor(4), 3)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Agreement, second[0].Agreement)
	assert.Equal(t, first[0].Size, second[0].Size)
}

func TestComputeSpeedup(t *testing.T) {
	tests := []struct {
		name          string
		reference     time.Duration
		candidate     time.Duration
		wantRatio     float64
		wantUnbounded bool
	}{
		{"typical", 100 * time.Microsecond, 10 * time.Microsecond, 10, false},
		{"below one", 5 * time.Microsecond, 10 * time.Microsecond, 0.5, false},
		{"zero reference", 0, 10 * time.Microsecond, 0, false},
		{"zero candidate is unbounded", 10 * time.Microsecond, 0, 0, true},
		{"both zero is unbounded", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio, unbounded := ComputeSpeedup(tt.reference, tt.candidate)
			assert.Equal(t, tt.wantUnbounded, unbounded)
			assert.InDelta(t, tt.wantRatio, ratio, 1e-9)
			assert.False(t, ratio < 0, "speedup must never be negative")
		})
	}
}

func TestAgree(t *testing.T) {
	found := func(i, j int) bench.Measurement {
		return bench.Measurement{Result: pairsum.Pair{I: i, J: j}, Found: true}
	}
	absent := bench.Measurement{}

	tests := []struct {
		name string
		a, b bench.Measurement
		want bool
	}{
		{"same found pair", found(0, 1), found(0, 1), true},
		{"different pairs", found(0, 1), found(1, 2), false},
		{"one absent", found(0, 1), absent, false},
		{"both absent", absent, absent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Agree(tt.a, tt.b))
		})
	}
}

func TestMultiObserver_FansOut(t *testing.T) {
	first := newRecordingObserver()
	second := newRecordingObserver()
	multi := MultiObserver{first, second}

	multi.SizeStarted(10)
	multi.SizeSkipped(10, "empty sequence")
	multi.RowCompleted(ReportRow{Size: 20})
	multi.AnalysisFinished(nil)

	for _, obs := range []*recordingObserver{first, second} {
		assert.Equal(t, []int{10}, obs.started)
		assert.Equal(t, "empty sequence", obs.skipped[10])
		require.Len(t, obs.rows, 1)
		assert.True(t, obs.finished)
	}
}
