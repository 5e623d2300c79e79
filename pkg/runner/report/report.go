// Package report prints the notes completed over a range of days.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/printers"
	"tableflip.dev/noter/pkg/timeutil"
	"tableflip.dev/noter/pkg/window"
)

// Report lists completed notes between Since and Until, inclusive. A zero
// Until means today.
type Report struct {
	Service *app.Service
	Since   timeutil.Date
	Until   timeutil.Date
	ShowID  bool
	Out     io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no session")
	}
	until := n.Until
	if until.IsZero() {
		until = n.Service.Today()
	}
	since := n.Since
	if since.IsZero() {
		since = until
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	res := n.Service.Report(since, until)
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.TitleWithCount(fmt.Sprintf("Done %s to %s", res.Since, res.Until), res.Total)
	for _, s := range res.Sections {
		pp.Day(window.NewDay(s.Date, s.Notes))
	}
	switch {
	case res.Total == 0:
		pp.Message("nothing completed in this range")
	case res.Open > 0:
		pp.Message(fmt.Sprintf("%d completed, %d still open", res.Total, res.Open))
	default:
		pp.Message(fmt.Sprintf("%d completed", res.Total))
	}
	return nil
}
