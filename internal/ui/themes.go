package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for CLI output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates positive outcomes (e.g., strategy agreement).
	Success string
	// Warning is used for caution messages or skipped inputs.
	Warning string
	// Error indicates failures or disagreement.
	Error string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or -no-color is provided.
	NoColorTheme = Theme{Name: "none"}

	// currentTheme is the active theme used throughout the application.
	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss-compatible colors for the TUI dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the green-accented dashboard palette.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#3DDC84"),
		Accent:  lipgloss.Color("#6CE5A1"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
	}

	// NoColorTUITheme disables all TUI colors.
	// lipgloss.NoColor{} renders text with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the TUI theme matching the currently active theme.
// When NoColorTheme is active, returns NoColorTUITheme; otherwise DarkTUITheme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == "none" {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/) for
// accessibility. If noColor is true or NO_COLOR is set, colors are disabled.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}

	// Any non-empty NO_COLOR value disables colors (per no-color.org spec).
	if os.Getenv("NO_COLOR") != "" {
		currentTheme = NoColorTheme
		return
	}

	currentTheme = DarkTheme
}

// ColorPrimary returns the active theme's primary accent code.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the active theme's secondary code.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorGreen returns the active theme's success code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the active theme's warning code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the active theme's error code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorBold returns the active theme's bold code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the active theme's underline code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the active theme's reset code.
func ColorReset() string { return GetCurrentTheme().Reset }
