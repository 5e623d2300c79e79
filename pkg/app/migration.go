package app

import (
	"context"
	"fmt"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/notes"
	"tableflip.dev/noter/pkg/timeutil"
)

// Migrate moves note id to the bucket for to, or to the future list
// when to is nil. The note keeps its id and text and is appended to the end
// of the target list. Moving a note onto its own bucket is a no-op.
func (s *Service) Migrate(ctx context.Context, id string, to *timeutil.Date) (Located, error) {
	loc, err := s.Locate(ctx, id)
	if err != nil {
		return Located{}, err
	}
	return s.move(loc, to)
}

func (s *Service) move(loc Located, to *timeutil.Date) (Located, error) {
	id := loc.Note.ID
	var target notes.Bucket
	var targetDate timeutil.Date
	if to == nil {
		target = notes.FutureBucket(s.Repo)
	} else {
		target = notes.DateBucket(s.Repo, *to)
		targetDate = *to
	}
	if target.Name() == loc.Bucket.Name() {
		return loc, nil
	}

	target.Invalidate()
	dest := note.Clone(target.Load())
	moved := loc.Note
	if note.IndexOf(dest, moved.ID) >= 0 {
		moved.ID = note.New().ID
	}
	if err := target.Save(append(dest, moved)); err != nil {
		return Located{}, fmt.Errorf("app: migrate %s to %s: %w", id, target.Name(), err)
	}
	target.Invalidate()

	if err := notes.DeleteNote(loc.Bucket, id, s.log); err != nil {
		return Located{}, err
	}
	return Located{Note: moved, Bucket: target, Date: targetDate}, nil
}

// MigrateOverdue moves every open overdue note to today and refreshes the
// overdue view. It returns the notes that moved.
func (s *Service) MigrateOverdue(ctx context.Context) ([]Located, error) {
	today := s.Today()
	var moved []Located
	for _, o := range s.Overdue.Refresh() {
		if err := ctx.Err(); err != nil {
			return moved, err
		}
		from := Located{Note: o.Note, Bucket: notes.DateBucket(s.Repo, o.Date), Date: o.Date}
		loc, err := s.move(from, &today)
		if err != nil {
			return moved, err
		}
		moved = append(moved, loc)
	}
	s.Overdue.Refresh()
	return moved, nil
}
