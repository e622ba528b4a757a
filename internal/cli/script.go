package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Lisiadito/insomnia/internal/config"
	"github.com/Lisiadito/insomnia/internal/errors"
	"github.com/Lisiadito/insomnia/internal/ui"
	"github.com/Lisiadito/insomnia/internal/util"
)

// dispatchScript handles a first argument that matched no built-in
// command: it names a script from the config file. The script's
// command line is tokenized, extended with the passthrough arguments,
// echoed, and executed against a freshly built command tree.
func (a *app) dispatchScript(cmd *cobra.Command, args []string) error {
	name := args[0]
	passthrough := args[1:]

	if a.opts.ScriptDepth >= 1 {
		return errors.New(errors.ErrScript,
			fmt.Sprintf("script resolves to another script '%s'", name),
			"scripts must invoke built-in commands, not other scripts")
	}

	workingDir, err := a.workingDir()
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(a.flags.ConfigPath, workingDir, a.flags.AppDataDir)
	if err != nil {
		return err
	}

	commandLine, ok := config.LookupScript(cfg, name)
	if !ok {
		fmt.Fprintf(a.stderr(), "No script matched '%s'.\n", name)
		if names := config.ScriptNames(cfg); len(names) > 0 {
			fmt.Fprintf(a.stderr(), "Available scripts: %s\n", strings.Join(names, ", "))
		}
		return nil
	}

	tokens := util.SplitArgs(commandLine)
	if len(tokens) == 0 {
		fmt.Fprintf(a.stderr(), "Script '%s' has no command to run.\n", name)
		return nil
	}

	// Global flags set on this invocation stay visible to the script.
	// They go in front so flags inside the script text take precedence.
	full := changedGlobalFlags(cmd)
	full = append(full, tokens...)
	full = append(full, passthrough...)

	pd := ui.NewPhaseDisplay(a.stdout())
	pd.CommandPrompt(strings.Join(full, " "))
	pd.Divider()

	child := newRootCommand(rootOptions{
		Version:     a.opts.Version,
		DevMode:     a.opts.DevMode,
		ScriptDepth: a.opts.ScriptDepth + 1,
		Stdout:      a.opts.Stdout,
		Stderr:      a.opts.Stderr,
		Logger:      a.log,
	})
	child.SetArgs(full)
	return child.Execute()
}

// changedGlobalFlags re-serializes the persistent flags the user set
// explicitly, so a dispatched script runs under the same globals.
func changedGlobalFlags(cmd *cobra.Command) []string {
	var out []string
	cmd.Root().PersistentFlags().Visit(func(f *pflag.Flag) {
		if f.Value.Type() == "bool" {
			if f.Value.String() == "true" {
				out = append(out, "--"+f.Name)
			}
			return
		}
		out = append(out, fmt.Sprintf("--%s=%s", f.Name, f.Value.String()))
	})
	return out
}
