// Package cli renders analysis progress and results for the command line.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//   - Write* functions write data to files on the filesystem.
package cli
