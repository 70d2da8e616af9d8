package format

import (
	"fmt"
	"time"
)

// Seconds renders a duration as fractional seconds with six decimal places,
// the resolution used by the report table. Microsecond-scale differences
// between the two search strategies stay visible at this precision.
func Seconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}

// Speedup renders a speedup ratio with two decimal places and an "x" suffix.
// An unbounded ratio (the lookup strategy measured as zero) renders as "inf".
func Speedup(ratio float64, unbounded bool) string {
	if unbounded {
		return "inf"
	}
	return fmt.Sprintf("%.2fx", ratio)
}

// ExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func ExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
