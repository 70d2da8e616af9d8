package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/logreen/gridsum/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the arguments request the version banner.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" {
			return true
		}
		// Flags stop at the first positional argument or terminator.
		if arg == "--" || len(arg) == 0 || arg[0] != '-' {
			return false
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "gridsum %s (%s)\n", Version, runtime.Version())
}
