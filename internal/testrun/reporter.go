package testrun

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Lisiadito/insomnia/internal/errors"
	"github.com/Lisiadito/insomnia/internal/ui"
)

// Reporter receives run events. Implementations write to a terminal in
// different levels of detail, named after the classic mocha reporters.
type Reporter interface {
	Begin(name string, total int)
	Report(result OpResult)
	End(summary Summary)
}

// ReporterNames lists the accepted --reporter values.
func ReporterNames() []string {
	return []string{"dot", "list", "min", "progress", "spec"}
}

// NewReporter builds the named reporter writing to w.
func NewReporter(name string, w io.Writer) (Reporter, error) {
	switch name {
	case "dot":
		return &dotReporter{w: w}, nil
	case "list":
		return &listReporter{w: w}, nil
	case "min":
		return &minReporter{w: w}, nil
	case "spec":
		return &specReporter{w: w}, nil
	case "progress":
		// The Bubble Tea program needs a real terminal; anything else
		// (CI logs, pipes, test buffers) gets the plain spinner.
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return newProgressReporter(w), nil
		}
		return newTextProgressReporter(w), nil
	default:
		return nil, errors.New(errors.ErrTest,
			fmt.Sprintf("invalid reporter '%s'", name),
			fmt.Sprintf("valid reporters are: %s", strings.Join(ReporterNames(), ", ")))
	}
}

var (
	passStyle  = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	failStyle  = lipgloss.NewStyle().Foreground(ui.ColorError)
	skipStyle  = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	mutedStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	boldStyle  = lipgloss.NewStyle().Bold(true)
)

func symbolFor(status OpStatus) string {
	switch status {
	case StatusPassed:
		return passStyle.Render(ui.SymbolSuccess)
	case StatusFailed:
		return failStyle.Render(ui.SymbolFail)
	default:
		return skipStyle.Render(ui.SymbolSkipped)
	}
}

func writeSummary(w io.Writer, s Summary) {
	parts := []string{
		passStyle.Render(fmt.Sprintf("%d passing", s.Passed)),
	}
	if s.Failed > 0 {
		parts = append(parts, failStyle.Render(fmt.Sprintf("%d failing", s.Failed)))
	}
	if s.Skipped > 0 {
		parts = append(parts, skipStyle.Render(fmt.Sprintf("%d skipped", s.Skipped)))
	}
	fmt.Fprintf(w, "%s %s\n", strings.Join(parts, ", "),
		mutedStyle.Render(fmt.Sprintf("(%s)", s.Duration.Round(time.Millisecond))))
}

func writeFailures(w io.Writer, s Summary) {
	for _, r := range s.Results {
		if r.Status != StatusFailed {
			continue
		}
		fmt.Fprintf(w, "  %s %s %s %s\n", failStyle.Render(ui.SymbolFail),
			r.ID, mutedStyle.Render(fmt.Sprintf("%s %s", r.Method, r.Path)), r.Message)
	}
}

// dotReporter prints one character per operation.
type dotReporter struct {
	w io.Writer
}

func (r *dotReporter) Begin(name string, total int) {}

func (r *dotReporter) Report(result OpResult) {
	switch result.Status {
	case StatusPassed:
		fmt.Fprint(r.w, passStyle.Render("."))
	case StatusFailed:
		fmt.Fprint(r.w, failStyle.Render("x"))
	default:
		fmt.Fprint(r.w, skipStyle.Render(","))
	}
}

func (r *dotReporter) End(summary Summary) {
	fmt.Fprintln(r.w)
	writeSummary(r.w, summary)
	writeFailures(r.w, summary)
}

// listReporter prints one line per operation as it completes.
type listReporter struct {
	w io.Writer
}

func (r *listReporter) Begin(name string, total int) {
	fmt.Fprintf(r.w, "%s %s\n", boldStyle.Render(name), mutedStyle.Render(fmt.Sprintf("(%d tests)", total)))
}

func (r *listReporter) Report(result OpResult) {
	line := fmt.Sprintf("%s %s %s", symbolFor(result.Status), result.ID,
		mutedStyle.Render(fmt.Sprintf("%s %s", result.Method, result.Path)))
	if result.Status == StatusFailed {
		line += " " + failStyle.Render(result.Message)
	}
	if result.Status != StatusSkipped {
		line += " " + mutedStyle.Render(result.Duration.Round(time.Millisecond).String())
	}
	fmt.Fprintln(r.w, line)
}

func (r *listReporter) End(summary Summary) {
	fmt.Fprintln(r.w)
	writeSummary(r.w, summary)
}

// minReporter prints only the final summary.
type minReporter struct {
	w io.Writer
}

func (r *minReporter) Begin(name string, total int) {}

func (r *minReporter) Report(result OpResult) {}

func (r *minReporter) End(summary Summary) {
	writeSummary(r.w, summary)
	writeFailures(r.w, summary)
}

// specReporter prints a header, an indented line per operation, and a
// divider-framed summary.
type specReporter struct {
	w io.Writer
}

func (r *specReporter) Begin(name string, total int) {
	fmt.Fprintln(r.w, boldStyle.Render(name))
}

func (r *specReporter) Report(result OpResult) {
	detail := ""
	if result.Status == StatusFailed {
		detail = " " + failStyle.Render(result.Message)
	}
	fmt.Fprintf(r.w, "  %s %s%s\n", symbolFor(result.Status), result.ID, detail)
}

func (r *specReporter) End(summary Summary) {
	fmt.Fprintln(r.w, mutedStyle.Render(strings.Repeat("─", ui.DividerWidth)))
	writeSummary(r.w, summary)
	writeFailures(r.w, summary)
}
