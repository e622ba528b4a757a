// Package ui provides terminal UI components for inso's CLI output.
//
// The package includes a spinner, a phase display, and a styled color
// and symbol palette built on Lip Gloss, shared by the lint issue list,
// the test-run reporters, and the script dispatcher's command echo.
//
// # Components Overview
//
//	Spinner          - Animated status indicator for long-running operations
//	PhaseDisplay     - Renders command phases and the script command echo
//	SpinnerComponent - Bubble Tea spinner for the progress test reporter
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings and skipped items
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// ColorEnabled reports whether the terminal profile supports color at
// all; plain reporters are used when it does not.
package ui
