package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lisiadito/insomnia/internal/config"
	"github.com/Lisiadito/insomnia/internal/errors"
)

// newDebugCommand builds the dev-only debug branch. The root
// constructor only attaches it in dev mode, so in release builds these
// commands do not exist at all.
func newDebugCommand(a *app) *cobra.Command {
	debugCmd := &cobra.Command{
		Use:    "debug",
		Short:  "Inspect resolved options and configuration",
		Hidden: true,
	}

	optionsCmd := &cobra.Command{
		Use:   "options",
		Short: "Print the resolved option set as JSON",
		Args:  cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.loadOptions(cmd, nil)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(opts.Snapshot(), "", "  ")
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					"failed to render options", "")
			}
			fmt.Fprintln(a.stdout(), string(out))
			return nil
		},
	}

	configFileCmd := &cobra.Command{
		Use:   "config-file",
		Short: "Print the loaded config file",
		Args:  cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			workingDir, err := a.workingDir()
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrDefault(a.flags.ConfigPath, workingDir, a.flags.AppDataDir)
			if err != nil {
				return err
			}
			if cfg.Path == "" {
				fmt.Fprintln(a.stdout(), "No config file found; using defaults.")
				return nil
			}
			data, err := os.ReadFile(cfg.Path)
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					fmt.Sprintf("failed to read %s", cfg.Path), "")
			}
			fmt.Fprintf(a.stdout(), "%s\n%s", cfg.Path, string(data))
			return nil
		},
	}

	debugCmd.AddCommand(optionsCmd, configFileCmd)
	return debugCmd
}
