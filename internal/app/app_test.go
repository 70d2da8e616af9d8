package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/logreen/gridsum/internal/errors"
)

// writeDataset writes a data_list_<size>.csv fixture holding 1..size, so
// target 3 is always solved by the pair (0, 1).
func writeDataset(t *testing.T, dir string, size int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("Value\n")
	for i := 1; i <= size; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	path := filepath.Join(dir, fmt.Sprintf("data_list_%d.csv", size))
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	app, err := New(append([]string{"gridsum"}, args...), io.Discard)
	require.NoError(t, err)
	return app
}

func TestNew_ParsesArguments(t *testing.T) {
	app := newTestApp(t, "-target", "42", "-runs", "2", "-q")

	assert.Equal(t, int64(42), app.Config.Target)
	assert.Equal(t, 2, app.Config.Runs)
	assert.True(t, app.Config.Quiet)
	assert.NotNil(t, app.Registry)
}

func TestNew_InvalidFlag(t *testing.T) {
	_, err := New([]string{"gridsum", "-definitely-not-a-flag"}, io.Discard)
	assert.Error(t, err)
}

func TestNew_HelpFlag(t *testing.T) {
	_, err := New([]string{"gridsum", "-h"}, io.Discard)
	require.Error(t, err)
	assert.True(t, IsHelpError(err))
}

func TestRun_ComparisonEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, 10)
	writeDataset(t, dir, 50)

	app := newTestApp(t, "-data-dir", dir, "-target", "3", "-runs", "2", "-q")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)

	assert.Equal(t, apperrors.ExitSuccess, code)

	s := out.String()
	assert.Contains(t, s, "Data Size")
	assert.Contains(t, s, "10")
	assert.Contains(t, s, "50")
	assert.Contains(t, s, "Yes")
}

func TestRun_NoDatasets(t *testing.T) {
	app := newTestApp(t, "-data-dir", t.TempDir(), "-target", "3", "-q")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)

	assert.Equal(t, apperrors.ExitErrorGeneric, code)
}

func TestRun_UnknownStrategy(t *testing.T) {
	app := newTestApp(t, "-data-dir", t.TempDir(), "-algo", "quantum", "-q")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)

	assert.Equal(t, apperrors.ExitErrorConfig, code)
}

func TestRun_SingleStrategy(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, 20)

	app := newTestApp(t, "-data-dir", dir, "-target", "3", "-runs", "2", "-algo", "lookup", "-q")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)

	assert.Equal(t, apperrors.ExitSuccess, code)

	s := out.String()
	assert.Contains(t, s, "Average (s)")
	assert.Contains(t, s, "Yes (0, 1)")
	assert.NotContains(t, s, "Speedup")
}

func TestRun_WritesReportFile(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, 10)
	reportPath := filepath.Join(t.TempDir(), "report.txt")

	app := newTestApp(t,
		"-data-dir", dir, "-target", "3", "-runs", "2", "-q", "-o", reportPath)

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)
	require.Equal(t, apperrors.ExitSuccess, code)

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Target sum: 3")
}

func TestRun_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, 10)

	app := newTestApp(t, "-data-dir", dir, "-target", "3", "-q")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	code := app.Run(ctx, &out)

	assert.Equal(t, apperrors.ExitErrorCanceled, code)
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"long form", []string{"--version"}, true},
		{"short form", []string{"-version"}, true},
		{"after another flag", []string{"-v", "-version"}, true},
		{"absent", []string{"-target", "3"}, false},
		{"positional stops scan", []string{"42", "-version"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasVersionFlag(tt.args))
		})
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	assert.Contains(t, buf.String(), "gridsum")
	assert.Contains(t, buf.String(), Version)
}
