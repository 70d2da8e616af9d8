package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/logreen/gridsum/internal/analysis"
	"github.com/logreen/gridsum/internal/bench"
	"github.com/logreen/gridsum/internal/dataset"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Messages produced by the analysis bridge and the background samplers.
type (
	// AnalysisStartedMsg announces the target and the discovered sources.
	AnalysisStartedMsg struct {
		Target  int64
		Sources []dataset.Source
	}

	// SizeStartedMsg announces that a new input size is being measured.
	SizeStartedMsg struct{ Size int }

	// MeasurementMsg carries one completed strategy measurement.
	MeasurementMsg struct {
		Size int
		M    bench.Measurement
	}

	// SkipMsg reports an input size that could not be analyzed.
	SkipMsg struct {
		Size   int
		Reason string
	}

	// RowMsg carries one completed report row.
	RowMsg struct{ Row analysis.ReportRow }

	// AnalysisDoneMsg signals the end of the analysis run.
	AnalysisDoneMsg struct {
		Rows []analysis.ReportRow
		Err  error
	}

	// TickMsg drives periodic UI refreshes.
	TickMsg time.Time

	// SysStatsMsg carries a system resource snapshot.
	SysStatsMsg struct {
		CPUPercent float64
		MemPercent float64
	}

	// ContextCancelledMsg signals external cancellation (signal or timeout).
	ContextCancelledMsg struct{ Err error }
)

// TUIObserver implements analysis.Observer by forwarding analysis events
// as bubbletea messages. The analyzer runs in a background goroutine; all
// rendering stays on the program's update loop.
type TUIObserver struct {
	ref *programRef
}

// Verify interface compliance.
var _ analysis.Observer = (*TUIObserver)(nil)

func (o *TUIObserver) AnalysisStarted(target int64, sources []dataset.Source) {
	o.ref.Send(AnalysisStartedMsg{Target: target, Sources: sources})
}

func (o *TUIObserver) SizeStarted(size int) {
	o.ref.Send(SizeStartedMsg{Size: size})
}

func (o *TUIObserver) StrategyMeasured(size int, m bench.Measurement) {
	o.ref.Send(MeasurementMsg{Size: size, M: m})
}

func (o *TUIObserver) SizeSkipped(size int, reason string) {
	o.ref.Send(SkipMsg{Size: size, Reason: reason})
}

func (o *TUIObserver) RowCompleted(row analysis.ReportRow) {
	o.ref.Send(RowMsg{Row: row})
}

func (o *TUIObserver) AnalysisFinished([]analysis.ReportRow) {
	// AnalysisDoneMsg is sent by the start command once Run returns, so the
	// final rows and the error arrive in a single message.
}
