package testrun

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lisiadito/insomnia/internal/ui"
)

// progressReporter drives a Bubble Tea program showing a progress bar
// and a spinner for the operation in flight. When the writer is not a
// terminal Bubble Tea degrades to line output on its own.
type progressReporter struct {
	w       io.Writer
	program *tea.Program
	done    chan struct{}
}

type opResultMsg struct {
	result OpResult
}

type runDoneMsg struct {
	summary Summary
}

func newProgressReporter(w io.Writer) *progressReporter {
	return &progressReporter{w: w}
}

func (r *progressReporter) Begin(name string, total int) {
	model := newProgressModel(name, total)
	r.program = tea.NewProgram(model,
		tea.WithOutput(r.w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	r.done = make(chan struct{})
	go func() {
		defer close(r.done)
		// The final model already rendered its last frame; errors here
		// only mean the terminal went away.
		_, _ = r.program.Run()
	}()
}

func (r *progressReporter) Report(result OpResult) {
	if r.program == nil {
		return
	}
	r.program.Send(opResultMsg{result: result})
}

func (r *progressReporter) End(summary Summary) {
	if r.program == nil {
		return
	}
	r.program.Send(runDoneMsg{summary: summary})
	<-r.done
	writeSummary(r.w, summary)
	writeFailures(r.w, summary)
}

// progressModel is the Bubble Tea model behind the progress reporter.
type progressModel struct {
	name    string
	total   int
	bar     progress.Model
	spinner ui.SpinnerComponent
	results []OpResult
	passed  int
	failed  int
	skipped int
}

func newProgressModel(name string, total int) progressModel {
	bar := progress.New(progress.WithDefaultGradient())
	// The spinner is started here, not in Init: Init runs on a copy of
	// the model, so a state transition made there would be lost.
	spin := ui.NewSpinnerComponent("running tests")
	spin.Start()
	return progressModel{
		name:    name,
		total:   total,
		bar:     bar,
		spinner: spin,
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Init()
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case opResultMsg:
		m.results = append(m.results, msg.result)
		switch msg.result.Status {
		case StatusPassed:
			m.passed++
		case StatusFailed:
			m.failed++
		case StatusSkipped:
			m.skipped++
		}
		if m.total > 0 {
			return m, m.bar.SetPercent(float64(len(m.results)) / float64(m.total))
		}
		return m, nil

	case runDoneMsg:
		if m.failed > 0 {
			m.spinner.Fail()
		} else {
			m.spinner.Success()
		}
		return m, tea.Quit

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd

	default:
		spin, cmd := m.spinner.Update(msg)
		m.spinner = spin
		return m, cmd
	}
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(boldStyle.Render(m.name))
	b.WriteString("\n")
	b.WriteString(m.bar.View())
	b.WriteString("\n")
	b.WriteString(m.spinner.View())
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d", len(m.results), m.total)))
	b.WriteString("\n")
	return b.String()
}

// textProgressReporter is the progress reporter for non-terminal
// output: the standalone spinner instead of a Bubble Tea program.
type textProgressReporter struct {
	w       io.Writer
	spinner *ui.Spinner
	failed  bool
}

func newTextProgressReporter(w io.Writer) *textProgressReporter {
	return &textProgressReporter{w: w}
}

func (r *textProgressReporter) Begin(name string, total int) {
	r.spinner = ui.NewSpinner(fmt.Sprintf("%s: running %d tests", name, total))
	r.spinner.SetOutput(func(s string) {
		io.WriteString(r.w, s)
	})
	r.spinner.Start()
}

func (r *textProgressReporter) Report(result OpResult) {
	if result.Status == StatusFailed {
		r.failed = true
	}
}

func (r *textProgressReporter) End(summary Summary) {
	if r.spinner != nil {
		if r.failed {
			r.spinner.Fail()
		} else {
			r.spinner.Success()
		}
	}
	writeSummary(r.w, summary)
	writeFailures(r.w, summary)
}
