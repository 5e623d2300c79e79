// Package window prints the day strip around a date.
package window

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/printers"
	"tableflip.dev/noter/pkg/timeutil"
)

const defaultSpan = 3

// Window centers the session window on On (today when nil) and prints Span
// days either side of it. Calendar adds a month grid of the center's month.
type Window struct {
	Service  *app.Service
	On       *timeutil.Date
	Span     int
	Calendar bool
	Out      io.Writer
}

func (n *Window) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show window, no session")
	}
	w := n.Service.Window
	target := n.Service.Today()
	if n.On != nil {
		target = *n.On
	}
	span := n.Span
	if span <= 0 {
		span = defaultSpan
	}

	w.Recenter(target)
	w.RefreshAll()
	center := w.IndexOf(target)
	if center < 0 {
		return errors.New("window: center day not loaded")
	}
	// Grow the edges so the strip is never cut short.
	if center < span {
		w.ExpandPast(span - center)
		center = w.IndexOf(target)
	}
	if extra := center + span + 1 - w.Len(); extra > 0 {
		w.ExpandFuture(extra)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	days := w.Days()
	lo, hi := max(center-span, 0), min(center+span+1, len(days))

	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Title(target.Time().Format("January 2006"))
	pp.Strip(days[lo:hi], center-lo)

	if n.Calendar {
		month := timeutil.NewDate(target.Year(), target.Month(), 1)
		open := make(map[int]int, month.DaysIn())
		for i := 0; i < month.DaysIn(); i++ {
			d := month.AddDays(i)
			for _, nt := range n.Service.Repo.LoadNotes(d) {
				if !nt.IsCompleted && !nt.IsBlank() {
					open[d.Day()]++
				}
			}
		}
		pp.PrintMonthCount(month, n.Service.Today(), open)
	}
	return nil
}
