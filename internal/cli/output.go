package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/logreen/gridsum/internal/analysis"
)

// WriteReportToFile writes the analysis report to a file as plain text.
//
// Parameters:
//   - rows: The completed report rows.
//   - target: The target sum the analysis searched for.
//   - runs: The per-strategy run count used for averaging.
//   - path: The destination file path; parent directories are created.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportToFile(rows []analysis.ReportRow, target int64, runs int, path string) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Grid Surplus Pair Analysis\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Target sum: %d\n", target)
	fmt.Fprintf(file, "# Runs per strategy: %d\n", runs)
	fmt.Fprintf(file, "# Input sizes: %d\n", len(rows))
	fmt.Fprintf(file, "\n")

	DisplayReport(rows, file)
	return nil
}
