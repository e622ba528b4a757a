package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Lisiadito/insomnia/internal/errors"
	"github.com/Lisiadito/insomnia/internal/logger"
)

// Exit codes. Run is the only place that turns errors into codes and
// Execute is the only caller of os.Exit.
const (
	ExitSuccess = 0
	// ExitFailure means the command ran to completion but the work it
	// performed did not succeed (lint errors, failing tests).
	ExitFailure = 1
	// ExitFatal means the command could not run at all: parse errors,
	// unreadable files, invalid flag values.
	ExitFatal = 2
)

// rootOptions configures a command tree. Everything that used to be
// ambient state (dev mode, output streams, dispatch depth) is threaded
// through here so tests can build any variant they need.
type rootOptions struct {
	Version string
	DevMode bool
	// ScriptDepth counts how many script dispatches are above this
	// tree. Scripts may not invoke other scripts, so depth 1 refuses
	// to resolve a script name again.
	ScriptDepth int
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      logger.Logger
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	WorkingDir string
	AppDataDir string
	ConfigPath string
	CI         bool
}

// app carries the per-invocation state the command handlers share.
type app struct {
	opts  rootOptions
	flags globalFlags
	log   logger.Logger
}

func (a *app) stdout() io.Writer { return a.opts.Stdout }
func (a *app) stderr() io.Writer { return a.opts.Stderr }

// workingDir resolves the effective working directory: the -w flag if
// given, the process working directory otherwise.
func (a *app) workingDir() (string, error) {
	if a.flags.WorkingDir != "" {
		return a.flags.WorkingDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"failed to determine working directory",
			"pass an explicit directory with --workingDir")
	}
	return dir, nil
}

// outputPath resolves a relative --output destination against the
// effective working directory.
func outputPath(path, workingDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workingDir, path)
}

// newRootCommand builds the full command tree. The debug branch only
// exists when opts.DevMode is set.
func newRootCommand(opts rootOptions) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	a := &app{opts: opts, log: opts.Logger}

	root := &cobra.Command{
		Use:   "inso",
		Short: "A CLI for working with API specs",
		Long: `inso works with API spec files: lint them, export them, generate
deployment config from them, and run their operations as smoke tests.

A first argument that is not a built-in command names a script from the
.insorc config file:

  inso lint spec ./spec.yaml
  inso run test --env staging
  inso build    # runs scripts.build from .insorc.yaml`,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Unmatched first arguments fall through to RunE, which treats
		// them as script names.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.dispatchScript(cmd, args)
		},
	}

	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	// Flag parsing on the root stops at the first positional argument
	// so that script passthrough arguments, including flags the tree
	// does not declare, survive verbatim.
	root.Flags().SetInterspersed(false)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.WorkingDir, "workingDir", "w", "", "set working directory")
	pf.StringVarP(&a.flags.AppDataDir, "appDataDir", "a", "", "set application data directory")
	pf.StringVar(&a.flags.ConfigPath, "config", "", "path to the .insorc config file")
	pf.BoolVar(&a.flags.CI, "ci", false, "run in CI mode, disabling prompts")

	root.AddCommand(
		newGenerateCommand(a),
		newRunCommand(a),
		newLintCommand(a),
		newExportCommand(a),
		newVersionCommand(a),
	)
	if opts.DevMode {
		root.AddCommand(newDebugCommand(a))
	}

	return root
}

// Run executes the CLI and maps the outcome to an exit code. It is the
// single funnel between command handlers and the process exit status.
func Run(args []string) int {
	root := newRootCommand(rootOptions{
		Version: version,
		DevMode: DevMode(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	})
	return execute(root, args, os.Stderr)
}

func execute(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if code, ok := errors.GetExitCode(err); ok {
			return code
		}
		fmt.Fprintln(stderr, err)
		return ExitFatal
	}
	return ExitSuccess
}

// Execute runs the CLI against os.Args and exits the process. Nothing
// else in the program calls os.Exit.
func Execute() {
	os.Exit(Run(os.Args[1:]))
}

// DevMode reports whether the dev-only commands should exist: either a
// development build or an explicit INSO_DEV override.
func DevMode() bool {
	return version == "dev" || os.Getenv("INSO_DEV") != ""
}
