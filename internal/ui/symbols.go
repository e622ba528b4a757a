package ui

// Unicode symbols for status indicators, shared by lint issue lists,
// test reporters, and spinner output.
const (
	SymbolSuccess  = "✓" // Check passed / test passed
	SymbolFail     = "✗" // Check failed / test failed
	SymbolWarning  = "!" // Non-fatal finding
	SymbolPending  = "○" // Not yet started
	SymbolProgress = "◐" // In progress
	SymbolComplete = "●" // Done (alternative to success)
	SymbolSkipped  = "⊘" // Skipped (filtered out)
)
