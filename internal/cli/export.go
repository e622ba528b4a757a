package cli

import (
	"github.com/spf13/cobra"

	"github.com/Lisiadito/insomnia/internal/export"
	"github.com/Lisiadito/insomnia/internal/spec"
)

// newExportCommand builds the export branch.
func newExportCommand(a *app) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export an API spec",
	}

	specCmd := &cobra.Command{
		Use:   "spec [spec]",
		Short: "Write the spec out as JSON or YAML",
		Long: `Write the spec back out, re-encoded. The output format follows the
--output file's extension; without --output the spec is written to
stdout as JSON.

Examples:
  inso export spec
  inso export spec ./spec.yaml --output api.json
  inso export spec --output dist/spec.yaml`,
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
			return a.exportSpec(identifier, opts)
		},
	}
	specCmd.Flags().StringP("output", "o", "", "write output to this file instead of stdout")

	exportCmd.AddCommand(specCmd)
	return exportCmd
}

func (a *app) exportSpec(identifier string, opts *Options) error {
	workingDir, err := a.workingDir()
	if err != nil {
		return err
	}

	doc, err := spec.Resolve(identifier, workingDir, opts.Config.Spec)
	if err != nil {
		return err
	}

	path := outputPath(opts.GetString("output", ""), workingDir)
	if err := export.WriteFile(a.stdout(), doc, path); err != nil {
		return err
	}
	if path != "" {
		a.log.Info("exported %s to %s", doc.Name, path)
	}
	return nil
}
