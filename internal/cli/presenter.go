package cli

import (
	"fmt"
	"io"

	"github.com/logreen/gridsum/internal/analysis"
	"github.com/logreen/gridsum/internal/bench"
	"github.com/logreen/gridsum/internal/dataset"
	"github.com/logreen/gridsum/internal/format"
	"github.com/logreen/gridsum/internal/ui"
)

// Report table column widths, sized for the header labels and six-decimal
// second values.
const (
	colSize     = 12
	colStrategy = 16
	colSpeedup  = 10
)

// ConsoleReporter implements analysis.Observer for interactive CLI output.
// It prints the report header up front, animates a spinner while each size
// is measured, and appends one table row as each size completes, so long
// quadratic scans show visible progress.
type ConsoleReporter struct {
	out     io.Writer
	spin    Spinner
	verbose bool

	// measurements collects per-strategy detail for the verbose footer,
	// keyed by input size in completion order.
	sizes        []int
	measurements map[int][]bench.Measurement
}

// Verify interface compliance.
var _ analysis.Observer = (*ConsoleReporter)(nil)

// NewConsoleReporter creates a reporter writing the table to out.
// When quiet is true the spinner is suppressed; rows still print.
func NewConsoleReporter(out io.Writer, verbose, quiet bool) *ConsoleReporter {
	var spin Spinner = nopSpinner{}
	if !quiet {
		spin = newSpinner(out)
	}
	return &ConsoleReporter{
		out:          out,
		spin:         spin,
		verbose:      verbose,
		measurements: make(map[int][]bench.Measurement),
	}
}

// AnalysisStarted prints the report banner and the table header.
func (r *ConsoleReporter) AnalysisStarted(target int64, sources []dataset.Source) {
	fmt.Fprintf(r.out, "%sGrid surplus pair analysis%s  target=%d  inputs=%d\n\n",
		ui.ColorBold(), ui.ColorReset(), target, len(sources))
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorUnderline(), FormatHeader(), ui.ColorReset())
	r.spin.Start()
}

// SizeStarted updates the spinner with the size being measured.
func (r *ConsoleReporter) SizeStarted(size int) {
	r.spin.UpdateSuffix(fmt.Sprintf(" benchmarking %d values...", size))
}

// StrategyMeasured records detail for the verbose footer and refreshes the
// spinner status.
func (r *ConsoleReporter) StrategyMeasured(size int, m bench.Measurement) {
	if _, seen := r.measurements[size]; !seen {
		r.sizes = append(r.sizes, size)
	}
	r.measurements[size] = append(r.measurements[size], m)
	r.spin.UpdateSuffix(fmt.Sprintf(" benchmarking %d values (%s: %s)...",
		size, m.Strategy, format.ExecutionDuration(m.Average)))
}

// SizeSkipped stops the spinner to print the skip diagnostic, then resumes.
func (r *ConsoleReporter) SizeSkipped(size int, reason string) {
	r.spin.Stop()
	fmt.Fprintf(r.out, "%s! skipped size %d: %s%s\n", ui.ColorYellow(), size, reason, ui.ColorReset())
	r.spin.Start()
}

// RowCompleted stops the spinner to print the finished row, then resumes.
func (r *ConsoleReporter) RowCompleted(row analysis.ReportRow) {
	r.spin.Stop()
	displayColoredRow(row, r.out)
	r.spin.Start()
}

// AnalysisFinished stops the spinner and prints the closing status line,
// plus per-strategy latency detail when verbose.
func (r *ConsoleReporter) AnalysisFinished(rows []analysis.ReportRow) {
	r.spin.Stop()

	if r.verbose {
		r.displayLatencyDetail()
	}

	disagreements := 0
	for _, row := range rows {
		if !row.Agreement {
			disagreements++
		}
	}

	switch {
	case len(rows) == 0:
		fmt.Fprintf(r.out, "\n%sNo input sizes could be analyzed.%s\n", ui.ColorRed(), ui.ColorReset())
	case disagreements == 0:
		fmt.Fprintf(r.out, "\n%sAll %d sizes verified: both strategies agree.%s\n",
			ui.ColorGreen(), len(rows), ui.ColorReset())
	default:
		fmt.Fprintf(r.out, "\n%s%d of %d sizes lack a verified matching pair (see Agreement column).%s\n",
			ui.ColorYellow(), disagreements, len(rows), ui.ColorReset())
	}
}

// displayLatencyDetail prints min/p50/p95/max per strategy per size.
func (r *ConsoleReporter) displayLatencyDetail() {
	fmt.Fprintf(r.out, "\n%sPer-run latency detail%s\n", ui.ColorBold(), ui.ColorReset())
	for _, size := range r.sizes {
		for _, m := range r.measurements[size] {
			fmt.Fprintf(r.out, "  %-*d %-*s min=%s p50=%s p95=%s max=%s\n",
				colSize, size,
				colStrategy, m.Strategy,
				format.ExecutionDuration(m.Percentile(0)),
				format.ExecutionDuration(m.Percentile(50)),
				format.ExecutionDuration(m.Percentile(95)),
				format.ExecutionDuration(m.Percentile(100)),
			)
		}
	}
}

// FormatHeader returns the report table header line.
func FormatHeader() string {
	return fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		colSize, "Data Size",
		colStrategy, "Exhaustive (s)",
		colStrategy, "Lookup (s)",
		colSpeedup, "Speedup",
		"Agreement")
}

// FormatRow returns one plain (uncolored) report table line.
func FormatRow(row analysis.ReportRow) string {
	return fmt.Sprintf("%-*d %-*s %-*s %-*s %s",
		colSize, row.Size,
		colStrategy, format.Seconds(row.ExhaustiveAvg),
		colStrategy, format.Seconds(row.LookupAvg),
		colSpeedup, format.Speedup(row.Speedup, row.Unbounded),
		formatAgreement(row.Agreement))
}

// formatAgreement renders the agreement flag.
func formatAgreement(agree bool) string {
	if agree {
		return "Yes"
	}
	return "No"
}

// displayColoredRow writes one table line with the agreement flag colored.
// Colors are applied last so column padding is not skewed by escape codes.
func displayColoredRow(row analysis.ReportRow, out io.Writer) {
	color := ui.ColorRed()
	if row.Agreement {
		color = ui.ColorGreen()
	}
	fmt.Fprintf(out, "%-*d %-*s %-*s %-*s %s%s%s\n",
		colSize, row.Size,
		colStrategy, format.Seconds(row.ExhaustiveAvg),
		colStrategy, format.Seconds(row.LookupAvg),
		colSpeedup, format.Speedup(row.Speedup, row.Unbounded),
		color, formatAgreement(row.Agreement), ui.ColorReset())
}

// DisplayReport writes the complete report table for the given rows.
// Used for non-interactive output (quiet mode and file export).
func DisplayReport(rows []analysis.ReportRow, out io.Writer) {
	fmt.Fprintln(out, FormatHeader())
	for _, row := range rows {
		fmt.Fprintln(out, FormatRow(row))
	}
}
