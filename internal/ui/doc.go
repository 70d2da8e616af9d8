// Package ui centralizes terminal color handling: ANSI themes for plain CLI
// output and a lipgloss palette for the TUI dashboard. Colors honor the
// NO_COLOR convention and the -no-color flag.
package ui
