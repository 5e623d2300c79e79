package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/timeutil"
)

// LookbackOptions
type LookbackOptions struct {
	Lookback string
}

func AddLookbackArgs(cmd *cobra.Command, o *LookbackOptions) {
	cmd.Flags().StringVar(&o.Lookback, "lookback", "",
		`How far back to search, example: --lookback=30d or --lookback=2w. Defaults to overdue.lookback.`)
}

// GetLookback returns the lookback in days, or 0 when the flag is unset.
func (o *LookbackOptions) GetLookback() (int, error) {
	if o.Lookback == "" {
		return 0, nil
	}
	days, _, err := timeutil.ParseWindow(o.Lookback)
	return days, err
}
