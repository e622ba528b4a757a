package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Lisiadito/insomnia/internal/errors"
	"github.com/Lisiadito/insomnia/internal/generate"
	"github.com/Lisiadito/insomnia/internal/spec"
)

// newGenerateCommand builds the generate branch.
func newGenerateCommand(a *app) *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate deployment configuration from an API spec",
	}

	configCmd := &cobra.Command{
		Use:   "config [spec]",
		Short: "Generate declarative or kubernetes config",
		Long: `Generate deployment configuration from an API spec.

The spec is located from the argument, the 'spec:' entry in .insorc, or
the default file names in the working directory. Without --type the
command asks interactively; --ci or a non-terminal stdin picks
declarative.

Examples:
  inso generate config ./spec.yaml --type declarative
  inso generate config --type kubernetes --output ingress.yaml
  inso generate config`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.loadOptions(cmd, map[string]interface{}{
				"output": "",
			})
			if err != nil {
				return err
			}
			identifier := ""
			if len(args) > 0 {
				identifier = args[0]
			}
			return a.generateConfig(identifier, opts)
		},
	}
	configCmd.Flags().StringP("type", "t", "", "config type (declarative or kubernetes)")
	configCmd.Flags().StringP("output", "o", "", "write output to this file instead of stdout")

	generateCmd.AddCommand(configCmd)
	return generateCmd
}

func (a *app) generateConfig(identifier string, opts *Options) error {
	workingDir, err := a.workingDir()
	if err != nil {
		return err
	}

	doc, err := spec.Resolve(identifier, workingDir, opts.Config.Spec)
	if err != nil {
		return err
	}

	var typ generate.Type
	if raw := opts.GetString("type", ""); raw != "" {
		typ, err = generate.ParseType(raw)
	} else {
		typ, err = a.promptForType()
	}
	if err != nil {
		return err
	}

	out, err := generate.Config(doc, typ)
	if err != nil {
		return err
	}

	if path := opts.GetString("output", ""); path != "" {
		path = outputPath(path, workingDir)
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return errors.WrapWithCode(err, errors.ErrGenerate,
				fmt.Sprintf("failed to write %s", path), "")
		}
		a.log.Info("wrote %s config to %s", typ, path)
		return nil
	}

	_, err = fmt.Fprint(a.stdout(), string(out))
	return err
}

// promptForType asks which config flavor to generate. In CI mode or
// without a terminal the prompt is skipped and declarative is used.
func (a *app) promptForType() (generate.Type, error) {
	if a.flags.CI || !term.IsTerminal(int(os.Stdin.Fd())) {
		return generate.TypeDeclarative, nil
	}

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which config type would you like to generate?").
				Options(
					huh.NewOption("Declarative (Kong)", string(generate.TypeDeclarative)),
					huh.NewOption("Kubernetes Ingress", string(generate.TypeKubernetes)),
				).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrGenerate,
			"config type selection aborted",
			"pass --type declarative or --type kubernetes to skip the prompt")
	}
	return generate.ParseType(choice)
}
