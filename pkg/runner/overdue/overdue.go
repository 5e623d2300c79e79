// Package overdue prints and resolves unfinished notes from earlier days.
package overdue

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/printers"
	"tableflip.dev/noter/pkg/timeutil"
)

// Overdue lists open notes from the last Lookback days. Complete checks off
// the given ids first; Migrate moves everything still open to today.
type Overdue struct {
	Service  *app.Service
	Lookback int
	Complete []string
	Migrate  bool
	ShowID   bool
	Out      io.Writer
}

func (n *Overdue) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list overdue notes, no session")
	}
	agg := n.Service.Overdue
	lookback := n.Lookback
	if lookback <= 0 {
		lookback = agg.Lookback()
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()

	list := agg.Compute(lookback)
	for _, id := range n.Complete {
		o, ok := agg.Find(id)
		if !ok {
			return fmt.Errorf("overdue note %q not found in the last %s", id, timeutil.FormatWindow(lookback))
		}
		o.Note.IsCompleted = true
		if err := agg.Update(o); err != nil {
			return err
		}
		pp.Message(fmt.Sprintf("completed %q from %s", o.Text(), o.Date))
	}
	if len(n.Complete) > 0 {
		list = agg.Notes()
	}

	if n.Migrate {
		moved, err := n.Service.MigrateOverdue(ctx)
		if err != nil {
			return err
		}
		pp.Message(fmt.Sprintf("moved %d %s to today", len(moved), plural(len(moved))))
		list = agg.Compute(lookback)
	}

	pp.TitleWithCount(fmt.Sprintf("Overdue (last %s)", timeutil.FormatWindow(lookback)), len(open(list)))
	if len(list) > 0 {
		pp.Overdue(list)
	}
	pp.Message(agg.Summary())
	return nil
}

func open(list []note.OverdueNote) []note.OverdueNote {
	out := make([]note.OverdueNote, 0, len(list))
	for _, o := range list {
		if !o.IsCompleted() {
			out = append(out, o)
		}
	}
	return out
}

func plural(n int) string {
	if n == 1 {
		return "note"
	}
	return "notes"
}
