// Package future prints the notes that are not planned for a day yet.
package future

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/notes"
	"tableflip.dev/noter/pkg/printers"
)

type Future struct {
	Service *app.Service
	ShowID  bool
	Out     io.Writer
}

func (n *Future) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list future notes, no session")
	}
	n.Service.Repo.InvalidateFutureNotesCache()
	list := n.Service.Future().Notes()

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.TitleWithCount("Future", len(list))
	pp.Notes(list...)
	pp.Message(notes.FutureSummary(list))
	return nil
}
