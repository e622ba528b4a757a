package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// GradientColors cycle through the spinner animation (pink -> purple -> cyan -> green).
var GradientColors = []lipgloss.Color{"13", "5", "6", "2"}

// ColorEnabled reports whether the current terminal profile supports
// color output. Reporters fall back to plain text when it does not.
func ColorEnabled() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
}
