package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/commands/options"
	"tableflip.dev/noter/pkg/runner/day"
)

func addDay(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	var days int

	cmd := &cobra.Command{
		Use:     "day",
		Aliases: []string{"today", "show"},
		Short:   "Show the notes of a day",
		Example: `
noter day
noter day --on=tomorrow
noter day --on=2024-6-1 --days 3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			on, err := oo.GetOn(svc.Today())
			if err != nil {
				return output.HandleError(err)
			}
			s := day.Day{
				Service: svc,
				Days:    days,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			if on != nil {
				s.On = *on
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().IntVar(&days, "days", 1, "Number of consecutive days to show.")
	topLevel.AddCommand(cmd)
}
