// Package note provides the runners that change a single note.
package note

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/notes"
	"tableflip.dev/noter/pkg/printers"
	"tableflip.dev/noter/pkg/timeutil"
)

// Add appends a note to a day, or to the future list when Future is set.
type Add struct {
	Service *app.Service
	On      *timeutil.Date
	Future  bool
	Text    string
	ShowID  bool
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no session")
	}
	text := strings.TrimSpace(n.Text)
	if text == "" {
		return errors.New("can not add an empty note")
	}

	var target *timeutil.Date
	if !n.Future {
		d := n.Service.Today()
		if n.On != nil {
			d = *n.On
		}
		target = &d
	}
	if _, err := n.Service.Add(target, text); err != nil {
		return err
	}
	printBucket(&printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}, n.Service, target)
	return nil
}

// Edit replaces the text of a note.
type Edit struct {
	Service *app.Service
	ID      string
	Text    string
	ShowID  bool
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no session")
	}
	loc, err := n.Service.Edit(ctx, n.ID, n.Text)
	if err != nil {
		return err
	}
	printLocated(&printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}, n.Service, loc)
	return nil
}

// Complete marks a note done, or open again with Undo.
type Complete struct {
	Service *app.Service
	ID      string
	Undo    bool
	ShowID  bool
	Out     io.Writer
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no session")
	}
	loc, err := n.Service.SetCompleted(ctx, n.ID, !n.Undo)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	printLocated(pp, n.Service, loc)
	if !loc.Date.IsZero() {
		loc.Bucket.Invalidate()
		pp.Message(app.DaySummary(loc.Bucket.Load()))
	}
	return nil
}

// Delete removes a note.
type Delete struct {
	Service *app.Service
	ID      string
	ShowID  bool
	Out     io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no session")
	}
	loc, err := n.Service.Delete(ctx, n.ID)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Message(fmt.Sprintf("deleted %q from %s", loc.Note.Text, loc.Bucket.Name()))
	printLocated(pp, n.Service, loc)
	return nil
}

// Migrate moves a note to another day, or to the future list when To is nil.
type Migrate struct {
	Service *app.Service
	ID      string
	To      *timeutil.Date
	ShowID  bool
	Out     io.Writer
}

func (n *Migrate) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not migrate, no session")
	}
	loc, err := n.Service.Migrate(ctx, n.ID, n.To)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Message(fmt.Sprintf("moved %q to %s", loc.Note.Text, loc.Bucket.Name()))
	printLocated(pp, n.Service, loc)
	return nil
}

func printLocated(pp *printers.PrettyPrint, svc *app.Service, loc app.Located) {
	if loc.Date.IsZero() {
		printBucket(pp, svc, nil)
		return
	}
	d := loc.Date
	printBucket(pp, svc, &d)
}

// printBucket reprints the list a change landed in, like the day view does.
func printBucket(pp *printers.PrettyPrint, svc *app.Service, d *timeutil.Date) {
	var b notes.Bucket
	var title string
	if d == nil {
		b = notes.FutureBucket(svc.Repo)
		title = "Future"
	} else {
		b = notes.DateBucket(svc.Repo, *d)
		title = fmt.Sprintf("%s, %d %s", d.Weekday(), d.Day(), d.Month())
	}
	b.Invalidate()
	list := b.Load()

	pp.NewLine()
	pp.TitleWithCount(title, len(list))
	pp.Notes(list...)
}
