package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Lisiadito/insomnia/internal/errors"
	"github.com/Lisiadito/insomnia/internal/lint"
	"github.com/Lisiadito/insomnia/internal/spec"
	"github.com/Lisiadito/insomnia/internal/ui"
	"github.com/Lisiadito/insomnia/internal/util"
)

// newLintCommand builds the lint branch.
func newLintCommand(a *app) *cobra.Command {
	lintCmd := &cobra.Command{
		Use:   "lint",
		Short: "Lint an API spec",
	}

	specCmd := &cobra.Command{
		Use:   "spec [spec]",
		Short: "Check the spec against the lint rules",
		Long: `Check the spec for structural problems: missing names, duplicate or
missing operation ids, invalid methods, relative paths, impossible
expected statuses.

Warnings are reported but do not fail the lint.

Examples:
  inso lint spec
  inso lint spec ./spec.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.loadOptions(cmd, nil)
			if err != nil {
				return err
			}
			identifier := ""
			if len(args) > 0 {
				identifier = args[0]
			}
			return a.lintSpec(identifier, opts)
		},
	}

	lintCmd.AddCommand(specCmd)
	return lintCmd
}

func (a *app) lintSpec(identifier string, opts *Options) error {
	workingDir, err := a.workingDir()
	if err != nil {
		return err
	}

	doc, err := spec.Resolve(identifier, workingDir, opts.Config.Spec)
	if err != nil {
		return err
	}

	result := lint.Check(doc)
	a.renderLint(doc, result)

	if !result.Ok() {
		return errors.NewExitError(ExitFailure)
	}
	return nil
}

func (a *app) renderLint(doc *spec.Document, result *lint.Result) {
	w := a.stdout()
	pd := ui.NewPhaseDisplay(w)
	errStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	okStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	for _, issue := range result.Issues {
		symbol := warnStyle.Render(ui.SymbolWarning)
		if issue.Severity == lint.SeverityError {
			symbol = errStyle.Render(ui.SymbolFail)
		}
		location := ""
		if issue.Operation != "" {
			location = mutedStyle.Render(fmt.Sprintf(" [%s]", issue.Operation))
		}
		fmt.Fprintf(w, "%s %s%s %s\n", symbol, issue.Rule, location, issue.Message)
	}

	if len(result.Issues) > 0 {
		pd.Newline()
	}

	errs, warnings := result.Counts()
	switch {
	case errs == 0 && warnings == 0:
		fmt.Fprintf(w, "%s %s is valid\n", okStyle.Render(ui.SymbolSuccess), doc.Name)
	case errs == 0:
		fmt.Fprintf(w, "%s %s passed with %d %s\n",
			okStyle.Render(ui.SymbolSuccess), doc.Name, warnings,
			util.Pluralize(warnings, "warning", "warnings"))
	default:
		fmt.Fprintf(w, "%s lint failed: %d %s, %d %s\n",
			errStyle.Render(ui.SymbolFail),
			errs, util.Pluralize(errs, "error", "errors"),
			warnings, util.Pluralize(warnings, "warning", "warnings"))
	}
}
