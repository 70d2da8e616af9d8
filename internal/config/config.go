// Package config defines the application configuration and the CLI/env
// parsing that produces it. Precedence is CLI flags > environment
// variables > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	apperrors "github.com/logreen/gridsum/internal/errors"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "GRIDSUM_"

// Defaults for the CLI flags.
const (
	DefaultRuns    = 5
	DefaultAlgo    = "all"
	DefaultTimeout = 5 * time.Minute

	// containerDataDir is probed first so the binary works unchanged
	// inside a container with a mounted data volume.
	containerDataDir = "/grid-data"
	localDataDir     = "data"
)

// AppConfig holds the full application configuration.
type AppConfig struct {
	Target      int64
	DataDir     string
	Runs        int
	Algo        string
	Timeout     time.Duration
	OutputFile  string
	Verbose     bool
	Quiet       bool
	TUI         bool
	NoColor     bool
	MetricsAddr string
}

// ParseConfig parses command-line arguments and environment variables into
// an AppConfig. An optional positional argument overrides -target; a
// malformed positional value is a configuration error.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		Runs:    DefaultRuns,
		Algo:    DefaultAlgo,
		Timeout: DefaultTimeout,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Int64Var(&cfg.Target, "target", 0, "Target sum to search pairs for")
	fs.StringVar(&cfg.DataDir, "data-dir", "", "Directory containing data_list_<N>.csv files (default: /grid-data, then ./data)")
	fs.IntVar(&cfg.Runs, "runs", DefaultRuns, "Timed runs per strategy and input size")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, "Strategy to benchmark: exhaustive, lookup, or all")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Overall analysis timeout")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the report to this file as well")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output (latency percentiles, system load)")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet output (table only)")
	fs.BoolVar(&cfg.TUI, "tui", false, "Interactive dashboard")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] [target]\n\n", programName)
		fmt.Fprintf(errWriter, "Compares an exhaustive pair scan against a single-pass hash lookup\n")
		fmt.Fprintf(errWriter, "across growing CSV inputs and reports timings, speedup and agreement.\n\n")
		fmt.Fprintf(errWriter, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	// Positional target overrides both the flag and the environment.
	if rest := fs.Args(); len(rest) > 0 {
		target, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return AppConfig{}, fail(errWriter, programName,
				apperrors.NewConfigError("invalid target %q: must be an integer", rest[0]))
		}
		cfg.Target = target
		if len(rest) > 1 {
			return AppConfig{}, fail(errWriter, programName,
				apperrors.NewConfigError("unexpected arguments after target: %v", rest[1:]))
		}
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fail(errWriter, programName, err)
	}
	return cfg, nil
}

// fail writes the diagnostic the way the flag package does, then returns
// the error for the caller's exit-code mapping.
func fail(w io.Writer, programName string, err error) error {
	fmt.Fprintf(w, "%s: %v\n", programName, err)
	return err
}

// Validate checks cross-field constraints.
func (c AppConfig) Validate() error {
	if c.Runs <= 0 {
		return apperrors.NewConfigError("runs must be positive, got %d", c.Runs)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("-q and -v are mutually exclusive")
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("-q and -tui are mutually exclusive")
	}
	return nil
}

// ResolveDataDir returns the directory to load datasets from. An explicit
// configuration wins; otherwise the container volume path is probed before
// the local checkout fallback.
func (c AppConfig) ResolveDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	if info, err := os.Stat(containerDataDir); err == nil && info.IsDir() {
		return containerDataDir
	}
	return localDataDir
}
