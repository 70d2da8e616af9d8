// Package analysis orchestrates the strategy comparison: for each discovered
// input size it loads the sequence, benchmarks both search strategies,
// computes speedup and agreement, and emits one report row. Presentation is
// decoupled through the Observer interface so CLI, TUI, and metrics backends
// can consume the same event stream.
package analysis
