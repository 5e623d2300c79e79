// Package day prints the notes of one or more consecutive days.
package day

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/printers"
	"tableflip.dev/noter/pkg/timeutil"
	"tableflip.dev/noter/pkg/window"
)

// Day shows Days days starting at On.
type Day struct {
	Service *app.Service
	On      timeutil.Date
	Days    int
	ShowID  bool
	Out     io.Writer
}

func (n *Day) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show day, no session")
	}
	on := n.On
	if on.IsZero() {
		on = n.Service.Today()
	}
	count := n.Days
	if count < 1 {
		count = 1
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		d := on.AddDays(i)
		n.Service.Repo.InvalidateCache(d)
		pp.Day(window.NewDay(d, n.Service.Repo.LoadNotes(d)))
	}

	if count == 1 {
		pp.Message(app.DaySummary(n.Service.Repo.LoadNotes(on)))
		if on == n.Service.Today() {
			if late := n.Service.RefreshOverdueNotes(); len(late) > 0 {
				pp.Message(n.Service.Overdue.Summary())
			}
		}
	}
	return nil
}
