package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles the gridsum binary into a temp dir.
func buildBinary(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	binName := "gridsum"
	if runtime.GOOS == "windows" {
		binName = "gridsum.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/gridsum")
	cmd.Dir = "../.." // module root
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build gridsum: %v", err)
	}
	return binPath
}

// writeFixtures creates data_list_<N>.csv files holding 1..N, so target 3
// is always solved by the pair (0, 1).
func writeFixtures(t *testing.T, sizes ...int) string {
	t.Helper()

	dir := t.TempDir()
	for _, size := range sizes {
		var b strings.Builder
		b.WriteString("Value\n")
		for i := 1; i <= size; i++ {
			fmt.Fprintf(&b, "%d\n", i)
		}
		path := filepath.Join(dir, fmt.Sprintf("data_list_%d.csv", size))
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}
	return dir
}

func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)
	dataDir := writeFixtures(t, 10, 100)
	emptyDir := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Comparison Table",
			args:     []string{"-data-dir", dataDir, "-runs", "2", "3"},
			wantOut:  "Data Size",
			wantCode: 0,
		},
		{
			name:     "Agreement Column",
			args:     []string{"-data-dir", dataDir, "-runs", "2", "3"},
			wantOut:  "Yes",
			wantCode: 0,
		},
		{
			name:     "Quiet Mode",
			args:     []string{"-data-dir", dataDir, "-runs", "2", "-q", "3"},
			wantOut:  "100",
			wantCode: 0,
		},
		{
			name:     "Single Strategy",
			args:     []string{"-data-dir", dataDir, "-runs", "2", "-algo", "lookup", "-q", "3"},
			wantOut:  "Average (s)",
			wantCode: 0,
		},
		{
			name:     "No Solution Still Succeeds",
			args:     []string{"-data-dir", dataDir, "-runs", "2", "-q", "--", "-1"},
			wantOut:  "No",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "gridsum",
			wantCode: 0,
		},
		{
			name:     "Malformed Target",
			args:     []string{"-data-dir", dataDir, "twelve"},
			wantOut:  "invalid target",
			wantCode: 4,
		},
		{
			name:     "Unknown Strategy",
			args:     []string{"-data-dir", dataDir, "-algo", "quantum", "3"},
			wantOut:  "",
			wantCode: 4,
		},
		{
			name:     "Empty Data Directory",
			args:     []string{"-data-dir", emptyDir, "-q", "3"},
			wantOut:  "",
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				if err == nil {
					t.Errorf("Expected exit code %d, but command succeeded.\nOutput: %s", tt.wantCode, outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok {
					if exitErr.ExitCode() != tt.wantCode {
						t.Errorf("Exit code mismatch: got %d, want %d\nOutput: %s",
							exitErr.ExitCode(), tt.wantCode, outStr)
					}
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}

func TestCLI_E2E_ReportFile(t *testing.T) {
	binPath := buildBinary(t)
	dataDir := writeFixtures(t, 10)
	reportPath := filepath.Join(t.TempDir(), "report.txt")

	cmd := exec.Command(binPath, "-data-dir", dataDir, "-runs", "2", "-q", "-o", reportPath, "3")
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("command failed: %v\nOutput: %s", err, output)
	}

	content, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	for _, want := range []string{"# Target sum: 3", "Data Size"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("report missing %q:\n%s", want, content)
		}
	}
}
