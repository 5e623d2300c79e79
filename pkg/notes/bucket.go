package notes

import (
	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/timeutil"
)

// Repository is the part of the note repository a Bucket reads through.
type Repository interface {
	LoadNotes(d timeutil.Date) []note.Note
	SaveNotes(d timeutil.Date, notes []note.Note) error
	InvalidateCache(d timeutil.Date)
	LoadFutureNotes() []note.Note
	SaveFutureNotes(notes []note.Note) error
	InvalidateFutureNotesCache()
}

// Bucket is one persisted note list: a calendar day or the future list.
type Bucket interface {
	Name() string
	Load() []note.Note
	Save(notes []note.Note) error
	Invalidate()
}

// DateBucket is the notes list for d.
func DateBucket(repo Repository, d timeutil.Date) Bucket {
	return dateBucket{repo: repo, date: d}
}

// FutureBucket is the undated notes list.
func FutureBucket(repo Repository) Bucket {
	return futureBucket{repo: repo}
}

type dateBucket struct {
	repo Repository
	date timeutil.Date
}

func (b dateBucket) Name() string                 { return b.date.String() }
func (b dateBucket) Load() []note.Note            { return b.repo.LoadNotes(b.date) }
func (b dateBucket) Save(notes []note.Note) error { return b.repo.SaveNotes(b.date, notes) }
func (b dateBucket) Invalidate()                  { b.repo.InvalidateCache(b.date) }

type futureBucket struct {
	repo Repository
}

func (b futureBucket) Name() string                 { return "future" }
func (b futureBucket) Load() []note.Note            { return b.repo.LoadFutureNotes() }
func (b futureBucket) Save(notes []note.Note) error { return b.repo.SaveFutureNotes(notes) }
func (b futureBucket) Invalidate()                  { b.repo.InvalidateFutureNotesCache() }
