// Package tui implements the optional full-screen dashboard. It mirrors the
// console reporter's content (progress log, comparison table, summary) but
// renders it live with bubbletea, with system stats sampled in the background.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/logreen/gridsum/internal/analysis"
	"github.com/logreen/gridsum/internal/cli"
	apperrors "github.com/logreen/gridsum/internal/errors"
	"github.com/logreen/gridsum/internal/format"
	"github.com/logreen/gridsum/internal/sysmon"
)

// AnalyzeFunc runs the full analysis, reporting events to the observer.
// The TUI invokes it once, in a background goroutine.
type AnalyzeFunc func(ctx context.Context, obs analysis.Observer) ([]analysis.ReportRow, error)

const maxLogLines = 200

// Model is the root bubbletea model for the dashboard.
type Model struct {
	spin    spinner.Model
	keymap  KeyMap
	ref     *programRef
	analyze AnalyzeFunc

	ctx    context.Context
	cancel context.CancelFunc

	target    int64
	version   string
	startTime time.Time

	width  int
	height int

	logs        []string
	scroll      int
	rows        []analysis.ReportRow
	currentSize int
	sys         sysmon.Stats

	done     bool
	err      error
	exitCode int
}

// NewModel creates a new dashboard model.
func NewModel(parentCtx context.Context, target int64, version string, analyze AnalyzeFunc) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusRunStyle

	return Model{
		spin:      sp,
		keymap:    DefaultKeyMap(),
		ref:       &programRef{},
		analyze:   analyze,
		ctx:       ctx,
		cancel:    cancel,
		target:    target,
		version:   version,
		startTime: time.Now(),
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		tickCmd(),
		startAnalysisCmd(m.ctx, m.ref, m.analyze),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.sys = sysmon.Stats{CPUPercent: msg.CPUPercent, MemPercent: msg.MemPercent}
		return m, nil

	case AnalysisStartedMsg:
		m.addLog(fmt.Sprintf("analyzing %d input sizes, target=%d", len(msg.Sources), msg.Target))
		return m, nil

	case SizeStartedMsg:
		m.currentSize = msg.Size
		m.addLog(fmt.Sprintf("measuring size %d", msg.Size))
		return m, nil

	case MeasurementMsg:
		m.addLog(fmt.Sprintf("  %-12s avg %s over %d runs",
			msg.M.Strategy, format.ExecutionDuration(msg.M.Average), msg.M.Runs))
		return m, nil

	case SkipMsg:
		m.addLog(logSkipStyle.Render(fmt.Sprintf("skipped size %d: %s", msg.Size, msg.Reason)))
		return m, nil

	case RowMsg:
		m.rows = append(m.rows, msg.Row)
		return m, nil

	case AnalysisDoneMsg:
		m.done = true
		m.rows = msg.Rows
		m.err = msg.Err
		m.exitCode = exitCodeFor(msg.Rows, msg.Err)
		if msg.Err != nil {
			m.addLog(statusErrStyle.Render("analysis failed: " + msg.Err.Error()))
		} else {
			m.addLog("analysis complete")
		}
		return m, nil

	case ContextCancelledMsg:
		if m.done {
			return m, tea.Quit
		}
		m.done = true
		m.err = msg.Err
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		m.scroll = max(m.scroll-1, 0)

	case key.Matches(msg, m.keymap.Down):
		m.scroll = min(m.scroll+1, max(len(m.logs)-1, 0))

	case key.Matches(msg, m.keymap.PageUp):
		m.scroll = max(m.scroll-10, 0)

	case key.Matches(msg, m.keymap.PageDown):
		m.scroll = min(m.scroll+10, max(len(m.logs)-1, 0))
	}
	return m, nil
}

func (m *Model) addLog(line string) {
	stamped := logTimeStyle.Render(time.Now().Format("15:04:05")) + " " + line
	m.logs = append(m.logs, stamped)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
	// Follow the tail unless the user scrolled up.
	if m.scroll >= len(m.logs)-2 {
		m.scroll = len(m.logs) - 1
	}
}

// View renders the dashboard: header, activity log, comparison table, footer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.renderHeader()
	table := m.renderTable()
	logs := m.renderLogs()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, logs, table, footer)
}

func (m Model) renderHeader() string {
	var status string
	switch {
	case m.err != nil:
		status = statusErrStyle.Render("FAILED")
	case m.done:
		status = statusDoneStyle.Render("DONE")
	default:
		status = m.spin.View() + statusRunStyle.Render("RUNNING")
	}

	elapsed := elapsedStyle.Render(time.Since(m.startTime).Truncate(100 * time.Millisecond).String())
	sys := sysStatStyle.Render(fmt.Sprintf("cpu %.0f%% mem %.0f%%", m.sys.CPUPercent, m.sys.MemPercent))

	left := titleStyle.Render("gridsum") + " " + versionStyle.Render(m.version)
	right := strings.Join([]string{status, elapsed, sys}, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderLogs() string {
	visible := m.logHeight()
	start := 0
	if len(m.logs) > visible {
		start = len(m.logs) - visible
		if m.scroll < len(m.logs)-1 {
			start = min(m.scroll, len(m.logs)-visible)
		}
	}
	end := min(start+visible, len(m.logs))

	lines := make([]string, 0, visible)
	lines = append(lines, m.logs[start:end]...)
	for len(lines) < visible {
		lines = append(lines, "")
	}
	return panelStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderTable() string {
	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(cli.FormatHeader()))
	b.WriteString("\n")
	for _, row := range m.rows {
		line := cli.FormatRow(row)
		if row.Agreement {
			b.WriteString(agreeStyle.Render(line))
		} else {
			b.WriteString(disagreeStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(m.rows) == 0 {
		b.WriteString(sysStatStyle.Render("waiting for results..."))
		b.WriteString("\n")
	}
	return panelStyle.Width(m.width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderFooter() string {
	keys := []struct{ k, desc string }{
		{"q", "quit"},
		{"↑/↓", "scroll"},
	}
	parts := make([]string, len(keys))
	for i, kd := range keys {
		parts[i] = footerKeyStyle.Render(kd.k) + " " + footerDescStyle.Render(kd.desc)
	}
	return " " + strings.Join(parts, "   ")
}

// logHeight returns the number of log lines that fit between the header,
// the table, and the footer.
func (m Model) logHeight() int {
	// header 1, footer 1, panel borders 2x2, table rows.
	h := m.height - 2 - 4 - len(m.rows) - 1
	if h < 3 {
		h = 3
	}
	if h > 15 {
		h = 15
	}
	return h
}

// Run is the public entry point for the TUI mode. It runs the dashboard,
// executes the analysis in the background, and returns the completed rows
// along with the process exit code.
func Run(ctx context.Context, target int64, version string, analyze AnalyzeFunc) ([]analysis.ReportRow, int) {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, target, version, analyze)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the bridge can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return nil, apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.rows, m.exitCode
	}
	return nil, apperrors.ExitSuccess
}

// exitCodeFor maps the analysis outcome to a process exit code.
func exitCodeFor(rows []analysis.ReportRow, err error) int {
	switch {
	case err != nil && apperrors.IsContextError(err):
		return apperrors.ExitErrorCanceled
	case err != nil:
		return apperrors.ExitErrorGeneric
	case len(rows) == 0:
		return apperrors.ExitErrorGeneric
	default:
		return apperrors.ExitSuccess
	}
}

// startAnalysisCmd launches the analysis in a goroutine-backed command.
func startAnalysisCmd(ctx context.Context, ref *programRef, analyze AnalyzeFunc) tea.Cmd {
	return func() tea.Msg {
		rows, err := analyze(ctx, &TUIObserver{ref: ref})
		return AnalysisDoneMsg{Rows: rows, Err: err}
	}
}

// watchContextCmd waits for external cancellation (signal or timeout) and
// sends a message so the dashboard can shut down.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}
