package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/logreen/gridsum/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	versionStyle     lipgloss.Style
	elapsedStyle     lipgloss.Style
	logTimeStyle     lipgloss.Style
	logStrategyStyle lipgloss.Style
	logSkipStyle     lipgloss.Style
	tableHeaderStyle lipgloss.Style
	agreeStyle       lipgloss.Style
	disagreeStyle    lipgloss.Style
	footerKeyStyle   lipgloss.Style
	footerDescStyle  lipgloss.Style
	statusRunStyle   lipgloss.Style
	statusDoneStyle  lipgloss.Style
	statusErrStyle   lipgloss.Style
	sysStatStyle     lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	logTimeStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	logStrategyStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	logSkipStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	tableHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text)

	agreeStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	disagreeStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusRunStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	statusErrStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	sysStatStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
