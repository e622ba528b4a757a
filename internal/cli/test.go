package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lisiadito/insomnia/internal/config"
	"github.com/Lisiadito/insomnia/internal/errors"
	"github.com/Lisiadito/insomnia/internal/spec"
	"github.com/Lisiadito/insomnia/internal/testrun"
	"github.com/Lisiadito/insomnia/internal/ui"
	"github.com/Lisiadito/insomnia/internal/util"
)

// defaultReporter matches the most verbose built-in reporter.
const defaultReporter = "spec"

// newRunCommand builds the run branch.
func newRunCommand(a *app) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run tests derived from an API spec",
	}

	testCmd := &cobra.Command{
		Use:   "test [spec]",
		Short: "Execute the spec's operations as smoke tests",
		Long: `Execute every operation in the spec as an HTTP request against an
environment from the .insorc config and check the responses.

Examples:
  inso run test --env staging
  inso run test ./spec.yaml --env production --reporter dot
  inso run test --testNamePattern '^pets' --bail`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.loadOptions(cmd, map[string]interface{}{
				"reporter": defaultReporter,
				"bail":     false,
				"keepFile": false,
			})
			if err != nil {
				return err
			}
			identifier := ""
			if len(args) > 0 {
				identifier = args[0]
			}
			return a.runTests(cmd, identifier, opts)
		},
	}
	testCmd.Flags().StringP("env", "e", "", "environment from .insorc to run against")
	testCmd.Flags().StringP("testNamePattern", "t", "", "run only operations whose id matches this regex")
	testCmd.Flags().StringP("reporter", "r", defaultReporter,
		fmt.Sprintf("reporter to use (%s)", strings.Join(testrun.ReporterNames(), ", ")))
	testCmd.Flags().BoolP("bail", "b", false, "stop at the first failing test")
	testCmd.Flags().Bool("keepFile", false, "keep the test results file after the run")

	runCmd.AddCommand(testCmd)
	return runCmd
}

func (a *app) runTests(cmd *cobra.Command, identifier string, opts *Options) error {
	workingDir, err := a.workingDir()
	if err != nil {
		return err
	}

	doc, err := spec.Resolve(identifier, workingDir, opts.Config.Spec)
	if err != nil {
		return err
	}

	env, err := selectEnvironment(opts.Config, opts.GetString("env", ""))
	if err != nil {
		return err
	}

	reporter, err := testrun.NewReporter(opts.GetString("reporter", defaultReporter), a.stdout())
	if err != nil {
		return err
	}

	runner := testrun.NewRunner(testrun.Target{
		BaseURL: env.BaseURL,
		Headers: env.Headers,
	}, a.log)

	summary, err := runner.Run(cmd.Context(), doc, testrun.Options{
		Pattern:    opts.GetString("testNamePattern", ""),
		Bail:       opts.GetBool("bail", false),
		KeepFile:   opts.GetBool("keepFile", false),
		WorkingDir: workingDir,
	}, reporter)
	if err != nil {
		return err
	}

	pd := ui.NewPhaseDisplay(a.stdout())
	pd.ThinDivider()
	switch {
	case summary.Total == 0:
		pd.RenderSkipped("run test", "no operations matched")
	case summary.Ok():
		pd.RenderSuccess("run test", summary.Duration)
	default:
		pd.RenderFailed("run test", summary.Duration)
	}

	if !summary.Ok() {
		return errors.NewExitError(ExitFailure)
	}
	return nil
}

// selectEnvironment picks the target environment. Without --env a lone
// configured environment is used; anything ambiguous is an error.
func selectEnvironment(cfg *config.Config, name string) (config.Environment, error) {
	if name != "" {
		env, ok := cfg.Environments[name]
		if !ok {
			return config.Environment{}, errors.New(errors.ErrTest,
				fmt.Sprintf("no environment named '%s' in config", name),
				availableHint("environments", config.EnvironmentNames(cfg)))
		}
		return env, nil
	}

	switch len(cfg.Environments) {
	case 0:
		return config.Environment{}, errors.New(errors.ErrTest,
			"no environments configured",
			"add an 'environments:' section with a baseUrl to .insorc.yaml")
	case 1:
		for _, env := range cfg.Environments {
			return env, nil
		}
	}
	return config.Environment{}, errors.New(errors.ErrTest,
		"multiple environments configured, none selected",
		availableHint("environments", config.EnvironmentNames(cfg)))
}

func availableHint(what string, names []string) string {
	return fmt.Sprintf("available %s: %s", what, util.JoinOrNone(names))
}
