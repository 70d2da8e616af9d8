package app

import (
	"context"
	"fmt"
	"io"

	"github.com/logreen/gridsum/internal/analysis"
	"github.com/logreen/gridsum/internal/bench"
	"github.com/logreen/gridsum/internal/cli"
	"github.com/logreen/gridsum/internal/dataset"
	apperrors "github.com/logreen/gridsum/internal/errors"
	"github.com/logreen/gridsum/internal/format"
	"github.com/logreen/gridsum/internal/logging"
	"github.com/logreen/gridsum/internal/metrics"
	"github.com/logreen/gridsum/internal/pairsum"
	"github.com/logreen/gridsum/internal/sysmon"
	"github.com/logreen/gridsum/internal/tui"
	"github.com/logreen/gridsum/internal/ui"
)

// discoverSources locates the dataset files for this run.
func (a *Application) discoverSources() ([]dataset.Source, error) {
	dir := a.Config.ResolveDataDir()
	sources, err := dataset.Discover(dir)
	if err != nil {
		return nil, apperrors.WrapError(err, "discovering datasets in %s", dir)
	}
	a.logger.Debug("datasets discovered",
		logging.String("dir", dir),
		logging.Int("count", len(sources)),
	)
	return sources, nil
}

// newAnalyzer builds the comparison analyzer with the configured observers.
func (a *Application) newAnalyzer(extra ...analysis.Observer) (*analysis.Analyzer, error) {
	exhaustive, err := a.Registry.Get("exhaustive")
	if err != nil {
		return nil, err
	}
	lookup, err := a.Registry.Get("lookup")
	if err != nil {
		return nil, err
	}

	observers := make([]analysis.Observer, 0, len(extra))
	for _, obs := range extra {
		if obs != nil {
			observers = append(observers, obs)
		}
	}

	return analysis.New(exhaustive, lookup,
		analysis.WithRuns(a.Config.Runs),
		analysis.WithLogger(a.logger),
		analysis.WithObserver(analysis.MultiObserver(observers)),
	), nil
}

// runComparison is the standard console mode: both strategies across all
// discovered sizes, live table output.
func (a *Application) runComparison(ctx context.Context, collector *metrics.Collector, out io.Writer) int {
	sources, err := a.discoverSources()
	if err != nil {
		a.logger.Error("dataset discovery failed", logging.Err(err))
		return apperrors.ExitErrorGeneric
	}

	a.printSystemLoad(out)

	var reporter analysis.Observer
	if a.Config.Quiet {
		reporter = analysis.NullObserver{}
	} else {
		reporter = cli.NewConsoleReporter(out, a.Config.Verbose, false)
	}

	var collectorObs analysis.Observer
	if collector != nil {
		collectorObs = collector
	}

	analyzer, err := a.newAnalyzer(reporter, collectorObs)
	if err != nil {
		a.logger.Error("analyzer setup failed", logging.Err(err))
		return apperrors.ExitErrorConfig
	}

	rows, runErr := analyzer.Run(ctx, sources, a.Config.Target)

	if a.Config.Quiet {
		cli.DisplayReport(rows, out)
	}

	return a.finish(rows, runErr, out)
}

// runTUI launches the interactive dashboard; the analysis runs behind it.
func (a *Application) runTUI(ctx context.Context, collector *metrics.Collector, out io.Writer) int {
	sources, err := a.discoverSources()
	if err != nil {
		a.logger.Error("dataset discovery failed", logging.Err(err))
		return apperrors.ExitErrorGeneric
	}

	analyzeFn := func(ctx context.Context, obs analysis.Observer) ([]analysis.ReportRow, error) {
		var collectorObs analysis.Observer
		if collector != nil {
			collectorObs = collector
		}
		analyzer, err := a.newAnalyzer(obs, collectorObs)
		if err != nil {
			return nil, err
		}
		return analyzer.Run(ctx, sources, a.Config.Target)
	}

	rows, code := tui.Run(ctx, a.Config.Target, Version, analyzeFn)

	if err := cli.WriteReportToFile(rows, a.Config.Target, a.Config.Runs, a.Config.OutputFile); err != nil {
		a.logger.Error("report not saved", logging.Err(err))
		if code == apperrors.ExitSuccess {
			return apperrors.ExitErrorGeneric
		}
	}
	return code
}

// runSingle benchmarks one strategy across all sizes without a comparison:
// no speedup, no agreement column.
func (a *Application) runSingle(ctx context.Context, finder pairsum.Finder, collector *metrics.Collector, out io.Writer) int {
	sources, err := a.discoverSources()
	if err != nil {
		a.logger.Error("dataset discovery failed", logging.Err(err))
		return apperrors.ExitErrorGeneric
	}

	a.printSystemLoad(out)
	if !a.Config.Quiet {
		fmt.Fprintf(out, "%sSingle-strategy benchmark%s  strategy=%s  target=%d  inputs=%d\n\n",
			ui.ColorBold(), ui.ColorReset(), finder.Name(), a.Config.Target, len(sources))
	}
	fmt.Fprintf(out, "%-12s %-16s %s\n", "Data Size", "Average (s)", "Found")

	loader := dataset.CSVLoader{}
	measured := 0
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return apperrors.ExitErrorCanceled
		}

		values, loadErr := loader.Load(src.Path)
		if loadErr != nil {
			a.logger.Warn("skipping size: source unavailable",
				logging.Int("size", src.Size), logging.Err(loadErr))
			continue
		}
		if len(values) == 0 {
			a.logger.Warn("skipping size: empty sequence", logging.Int("size", src.Size))
			continue
		}

		m := bench.Run(finder, values, a.Config.Target, a.Config.Runs)
		if collector != nil {
			collector.StrategyMeasured(src.Size, m)
		}
		measured++

		found := "No"
		if m.Found {
			found = fmt.Sprintf("Yes %s", m.Result)
		}
		fmt.Fprintf(out, "%-12d %-16s %s\n", src.Size, format.Seconds(m.Average), found)

		if a.Config.Verbose {
			fmt.Fprintf(out, "  min=%s p50=%s p95=%s max=%s\n",
				format.ExecutionDuration(m.Percentile(0)),
				format.ExecutionDuration(m.Percentile(50)),
				format.ExecutionDuration(m.Percentile(95)),
				format.ExecutionDuration(m.Percentile(100)))
		}
	}

	if measured == 0 {
		a.logger.Error("no input sizes could be measured")
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// finish saves the report and maps the run outcome to an exit code.
// Disagreements are not failures: they surface in the Agreement column.
func (a *Application) finish(rows []analysis.ReportRow, runErr error, out io.Writer) int {
	if err := cli.WriteReportToFile(rows, a.Config.Target, a.Config.Runs, a.Config.OutputFile); err != nil {
		a.logger.Error("report not saved", logging.Err(err))
		return apperrors.ExitErrorGeneric
	}
	if a.Config.OutputFile != "" && !a.Config.Quiet {
		fmt.Fprintf(out, "\n%sReport saved to %s%s\n", ui.ColorGreen(), a.Config.OutputFile, ui.ColorReset())
	}

	switch {
	case runErr != nil && apperrors.IsContextError(runErr):
		a.logger.Error("analysis canceled", logging.Err(runErr))
		return apperrors.ExitErrorCanceled
	case runErr != nil:
		a.logger.Error("analysis failed", logging.Err(runErr))
		return apperrors.ExitErrorGeneric
	case len(rows) == 0:
		a.logger.Error("no input sizes could be analyzed")
		return apperrors.ExitErrorGeneric
	default:
		return apperrors.ExitSuccess
	}
}

// printSystemLoad prints a one-line system snapshot in verbose mode.
func (a *Application) printSystemLoad(out io.Writer) {
	if !a.Config.Verbose || a.Config.Quiet {
		return
	}
	s := sysmon.Sample()
	fmt.Fprintf(out, "System load: cpu %.0f%%  mem %.0f%%\n", s.CPUPercent, s.MemPercent)
}
