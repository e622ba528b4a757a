package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newVersionCommand builds the version command.
func newVersionCommand(a *app) *cobra.Command {
	var short bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of inso.`,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(a.stdout(), a.opts.Version)
				return
			}
			fmt.Fprintf(a.stdout(), "inso %s\n", formatVersion(a.opts.Version))
			fmt.Fprintf(a.stdout(), "commit: %s\n", commit)
			fmt.Fprintf(a.stdout(), "built: %s\n", date)
			fmt.Fprintf(a.stdout(), "go: %s\n", runtime.Version())
			fmt.Fprintf(a.stdout(), "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
	versionCmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return versionCmd
}

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
	if d != "" {
		date = d
	}
}
