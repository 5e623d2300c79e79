package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/commands/options"
	"tableflip.dev/noter/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the settings and where notes are stored.",
		Example: `
noter info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
