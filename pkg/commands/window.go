package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/commands/options"
	"tableflip.dev/noter/pkg/runner/window"
)

func addWindow(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	var (
		span     int
		calendar bool
	)

	cmd := &cobra.Command{
		Use:     "window",
		Aliases: []string{"week", "strip"},
		Short:   "Show the days around a date with their open counts",
		Example: `
noter window
noter window --on=2024-6-1 --span 7 --calendar
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
			s := window.Window{
				Service:  svc,
				On:       on,
				Span:     span,
				Calendar: calendar,
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().IntVar(&span, "span", 3, "Days to show either side of the center day.")
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Also print the month with open days highlighted.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
