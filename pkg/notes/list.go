// Package notes is the editable view of a single note list.
package notes

import (
	"fmt"
	"log/slog"
	"sync"

	"tableflip.dev/noter/pkg/note"
)

// List mirrors one bucket while it is being edited. Every mutation saves the
// whole list back to the bucket.
type List struct {
	bucket         Bucket
	log            *slog.Logger
	onAllCompleted func()

	mu        sync.Mutex
	notes     []note.Note
	completed bool
}

type Option func(*List)

func WithLogger(l *slog.Logger) Option {
	return func(ls *List) {
		if l != nil {
			ls.log = l
		}
	}
}

// OnAllCompleted registers fn to run when the last open note is checked off.
// It fires once per transition, not on every change while complete.
func OnAllCompleted(fn func()) Option {
	return func(ls *List) { ls.onAllCompleted = fn }
}

// NewList loads b into an editable list.
func NewList(b Bucket, opts ...Option) *List {
	ls := &List{bucket: b, log: slog.Default()}
	for _, o := range opts {
		o(ls)
	}
	ls.notes = note.Clone(b.Load())
	ls.completed = allCompleted(ls.notes)
	return ls
}

// Name identifies the bucket.
func (ls *List) Name() string { return ls.bucket.Name() }

// Reload discards local state and re-reads the bucket from the store.
func (ls *List) Reload() {
	ls.bucket.Invalidate()
	ls.SubmitList(ls.bucket.Load())
}

// Notes returns a copy of the current notes.
func (ls *List) Notes() []note.Note {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return note.Clone(ls.notes)
}

// GetNotes is Notes.
func (ls *List) GetNotes() []note.Note { return ls.Notes() }

// SubmitList replaces the displayed notes without saving them.
func (ls *List) SubmitList(notes []note.Note) {
	ls.mu.Lock()
	ls.notes = note.Clone(notes)
	fire := ls.evaluateLocked()
	ls.mu.Unlock()
	ls.fire(fire)
}

// AddNote appends an empty note and saves the list.
func (ls *List) AddNote() (note.Note, error) {
	n := note.New()
	ls.mu.Lock()
	ls.notes = append(ls.notes, n)
	fire := ls.evaluateLocked()
	err := ls.saveLocked()
	ls.mu.Unlock()
	ls.fire(fire)
	return n, err
}

// Append adds a note with text and saves the list.
func (ls *List) Append(text string) (note.Note, error) {
	n := note.New()
	n.Text = text
	ls.mu.Lock()
	ls.notes = append(ls.notes, n)
	fire := ls.evaluateLocked()
	err := ls.saveLocked()
	ls.mu.Unlock()
	ls.fire(fire)
	return n, err
}

// SetText changes the text of id and saves.
func (ls *List) SetText(id, text string) error {
	return ls.mutate(id, func(i int) {
		ls.notes[i].Text = text
	})
}

// Commit saves the list when the editor for id loses focus. A note left blank
// is dropped unless it is the only note in the list.
func (ls *List) Commit(id string) error {
	return ls.mutate(id, func(i int) {
		if ls.notes[i].IsBlank() && len(ls.notes) > 1 {
			ls.notes = append(ls.notes[:i], ls.notes[i+1:]...)
		}
	})
}

// Toggle flips the completion state of id.
func (ls *List) Toggle(id string) error {
	return ls.mutate(id, func(i int) {
		ls.notes[i].IsCompleted = !ls.notes[i].IsCompleted
	})
}

// SetCompleted sets the completion state of id.
func (ls *List) SetCompleted(id string, done bool) error {
	return ls.mutate(id, func(i int) {
		ls.notes[i].IsCompleted = done
	})
}

// Delete removes id.
func (ls *List) Delete(id string) error {
	return ls.mutate(id, func(i int) {
		ls.notes = append(ls.notes[:i], ls.notes[i+1:]...)
	})
}

// AllCompleted reports whether there is at least one non-blank note and every
// non-blank note is done.
func (ls *List) AllCompleted() bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return allCompleted(ls.notes)
}

// Unchecked counts open notes.
func (ls *List) Unchecked() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	count := 0
	for _, n := range ls.notes {
		if !n.IsCompleted {
			count++
		}
	}
	return count
}

func (ls *List) mutate(id string, fn func(i int)) error {
	ls.mu.Lock()
	i := note.IndexOf(ls.notes, id)
	if i < 0 {
		ls.mu.Unlock()
		ls.log.Warn("note not found", "bucket", ls.bucket.Name(), "id", id)
		return nil
	}
	fn(i)
	fire := ls.evaluateLocked()
	err := ls.saveLocked()
	ls.mu.Unlock()
	ls.fire(fire)
	return err
}

func (ls *List) saveLocked() error {
	if err := ls.bucket.Save(note.Clone(ls.notes)); err != nil {
		return fmt.Errorf("notes: save %s: %w", ls.bucket.Name(), err)
	}
	return nil
}

// evaluateLocked tracks the all-completed edge and reports whether the
// callback should fire.
func (ls *List) evaluateLocked() bool {
	now := allCompleted(ls.notes)
	rising := now && !ls.completed
	ls.completed = now
	return rising && ls.onAllCompleted != nil
}

func (ls *List) fire(ok bool) {
	if ok {
		ls.onAllCompleted()
	}
}

func allCompleted(notes []note.Note) bool {
	seen := false
	for _, n := range notes {
		if n.IsBlank() {
			continue
		}
		if !n.IsCompleted {
			return false
		}
		seen = true
	}
	return seen
}

// EditNote replaces the text of id in b, reading the bucket fresh from the
// store first. A missing note is logged and ignored.
func EditNote(b Bucket, id, text string, log *slog.Logger) error {
	return editBucket(b, id, log, func(notes []note.Note, i int) []note.Note {
		notes[i].Text = text
		return notes
	})
}

// DeleteNote removes id from b, reading the bucket fresh from the store first.
func DeleteNote(b Bucket, id string, log *slog.Logger) error {
	return editBucket(b, id, log, func(notes []note.Note, i int) []note.Note {
		return append(notes[:i], notes[i+1:]...)
	})
}

// SetNoteCompleted sets the completion state of id in b.
func SetNoteCompleted(b Bucket, id string, done bool, log *slog.Logger) error {
	return editBucket(b, id, log, func(notes []note.Note, i int) []note.Note {
		notes[i].IsCompleted = done
		return notes
	})
}

func editBucket(b Bucket, id string, log *slog.Logger, fn func([]note.Note, int) []note.Note) error {
	if log == nil {
		log = slog.Default()
	}
	b.Invalidate()
	all := note.Clone(b.Load())
	i := note.IndexOf(all, id)
	if i < 0 {
		log.Warn("note not found", "bucket", b.Name(), "id", id)
		return nil
	}
	if err := b.Save(fn(all, i)); err != nil {
		return fmt.Errorf("notes: save %s: %w", b.Name(), err)
	}
	b.Invalidate()
	return nil
}

// FutureSummary is the encouragement line shown above the future list.
func FutureSummary(notes []note.Note) string {
	open := 0
	for _, n := range notes {
		if !n.IsCompleted {
			open++
		}
	}
	switch {
	case open <= 5:
		return "Work is not a wolf, it won't run off into the woods."
	case open <= 10:
		return "Don't just sit there, pick one and start."
	case open > 15:
		return "That pile is not going to shrink by itself."
	}
	return "Tasks without a date wait here until you plan them."
}
