package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28", --on="2/28" or --on=tomorrow.`)
}

// GetOn resolves the flag against today. It returns nil when the flag is
// unset.
func (o *OnOptions) GetOn(today timeutil.Date) (*timeutil.Date, error) {
	if o.OnString == "" {
		return nil, nil
	}
	d, err := ParseDay(o.OnString, today)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseDay accepts today, yesterday, tomorrow, 2020-2-28 or 2/28.
func ParseDay(v string, today timeutil.Date) (timeutil.Date, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	}
	t, err := time.Parse(layoutISO, v)
	if err == nil {
		return timeutil.DateOf(t), nil
	}
	// Let the year be the same.
	t, err = time.Parse(layoutISOShort, v)
	if err != nil {
		return timeutil.Date{}, fmt.Errorf("invalid date %q, expected YYYY-M-D or M/D", v)
	}
	d := timeutil.NewDate(today.Year(), t.Month(), t.Day())
	// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
	if d.Before(today) {
		d = timeutil.NewDate(today.Year()+1, t.Month(), t.Day())
	}
	return d, nil
}
