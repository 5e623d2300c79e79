package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/commands/options"
	"tableflip.dev/noter/pkg/runner/backup"
)

func addExport(topLevel *cobra.Command) {
	var (
		all     bool
		useYAML bool
		file    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of notes and the journal",
		Long: `Export writes one document keyed by store key. By default it holds the days
within export.window of today plus the future list and the journal; --all
includes every stored day.`,
		Example: `
noter export > backup.json
noter export --all --yaml -f backup.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := backup.Export{
				Service: svc,
				All:     all,
				YAML:    useYAML,
				File:    file,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include every stored day.")
	cmd.Flags().BoolVar(&useYAML, "yaml", false, "Render the backup as YAML.")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	var file string
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore a backup written by export",
		Long: `Import reads a JSON or YAML backup. Every bucket in the document replaces the
stored one; buckets not in the document are left alone. A malformed document
is rejected before anything is written.`,
		Example: `
noter import -f backup.json
noter import < backup.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ok, err := co.Confirm(cmd, "Replace stored notes with the backup")
			if err != nil || !ok {
				return output.HandleError(err)
			}
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := backup.Import{
				Service: svc,
				File:    file,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read from this file; - or empty reads stdin.")
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
