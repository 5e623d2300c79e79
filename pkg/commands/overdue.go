package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/commands/options"
	"tableflip.dev/noter/pkg/runner/overdue"
)

func addOverdue(topLevel *cobra.Command) {
	lo := &options.LookbackOptions{}
	io := &options.IDOptions{}
	var (
		complete []string
		migrate  bool
	)

	cmd := &cobra.Command{
		Use:     "overdue",
		Aliases: []string{"late"},
		Short:   "List unfinished notes from earlier days",
		Long: `Overdue collects every open note from the days before today, oldest first.
Completing a note from here removes it from the list; --migrate moves all of
them to today.`,
		Example: `
noter overdue
noter overdue --lookback 2w
noter overdue --complete <note id>
noter overdue --migrate
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			lookback, err := lo.GetLookback()
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := overdue.Overdue{
				Service:  svc,
				Lookback: lookback,
				Complete: complete,
				Migrate:  migrate,
				ShowID:   io.ShowID,
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddLookbackArgs(cmd, lo)
	cmd.Flags().StringSliceVar(&complete, "complete", nil, "Mark these overdue notes as done.")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Move every overdue note to today.")
	_ = cmd.RegisterFlagCompletionFunc("complete", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return overdueIDCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
