// Package app wires configuration, the strategy registry, the analyzer and
// the presentation layers into a runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/logreen/gridsum/internal/config"
	apperrors "github.com/logreen/gridsum/internal/errors"
	"github.com/logreen/gridsum/internal/logging"
	"github.com/logreen/gridsum/internal/metrics"
	"github.com/logreen/gridsum/internal/pairsum"
	"github.com/logreen/gridsum/internal/server"
	"github.com/logreen/gridsum/internal/ui"
)

// Application represents the gridsum application instance.
type Application struct {
	Config    config.AppConfig
	Registry  pairsum.Registry
	ErrWriter io.Writer

	logger logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets a custom strategy registry for the application.
func WithRegistry(r pairsum.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = pairsum.NewDefaultRegistry()
	}

	programName := "gridsum"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	a.logger = a.buildLogger()

	// Lifecycle: overall timeout, then signal cancellation.
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	collector := a.startMetricsServer(ctx)

	finders, err := pairsum.Select(a.Config.Algo, a.Registry)
	if err != nil {
		a.logger.Error("invalid strategy selection", logging.Err(err))
		return apperrors.ExitErrorConfig
	}

	if len(finders) == 1 {
		return a.runSingle(ctx, finders[0], collector, out)
	}

	if a.Config.TUI {
		return a.runTUI(ctx, collector, out)
	}
	return a.runComparison(ctx, collector, out)
}

// buildLogger returns the diagnostic logger for the configured verbosity.
// Quiet mode silences diagnostics entirely; the table still prints.
func (a *Application) buildLogger() logging.Logger {
	if a.Config.Quiet {
		return logging.NopLogger{}
	}
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return logging.NewDefaultLogger()
}

// startMetricsServer launches the /metrics endpoint when configured and
// returns the collector to hook into the analysis, or nil.
func (a *Application) startMetricsServer(ctx context.Context) *metrics.Collector {
	if a.Config.MetricsAddr == "" {
		return nil
	}
	collector := metrics.NewCollector()
	srv := server.New(a.Config.MetricsAddr, collector.Registry(), a.logger)
	go func() {
		if err := srv.Run(ctx); err != nil {
			a.logger.Error("metrics server failed", logging.Err(err))
		}
	}()
	return collector
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
