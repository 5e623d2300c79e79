package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/commands/options"
	"tableflip.dev/noter/pkg/runner/report"
	"tableflip.dev/noter/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently completed notes grouped by day",
		Long: `Report lists completed notes grouped by day within the specified window,
ending today.

Examples:
  noter report
  noter report --last 3d
  noter report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			days, _, err := timeutil.ParseWindow(last)
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			until := svc.Today()
			s := report.Report{
				Service: svc,
				Since:   until.AddDays(-(days - 1)),
				Until:   until,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&last, "last", "1w", "time window to include (for example 3d, 1w)")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
