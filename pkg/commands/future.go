package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/commands/options"
	"tableflip.dev/noter/pkg/runner/future"
)

func addFuture(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "future",
		Aliases: []string{"someday"},
		Short:   "List notes not planned for a day yet",
		Example: `
noter future
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := future.Future{
				Service: svc,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
