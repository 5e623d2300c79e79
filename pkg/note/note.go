// Package note defines the records persisted by noter.
package note

import (
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/noter/pkg/timeutil"
)

// Note is a single task line inside a bucket.
type Note struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// New returns a note with a fresh id and empty text.
func New() Note {
	return Note{ID: uuid.NewString()}
}

// IsBlank reports whether the note has no visible text.
func (n Note) IsBlank() bool {
	return strings.TrimSpace(n.Text) == ""
}

// Clone returns a copy of notes. A nil input yields an empty, non-nil slice.
func Clone(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	return out
}

// IndexOf returns the position of id in notes or -1.
func IndexOf(notes []Note, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Equal reports whether both lists hold the same notes in the same order.
func Equal(a, b []Note) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Incomplete filters notes down to the ones not yet completed.
func Incomplete(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if !n.IsCompleted {
			out = append(out, n)
		}
	}
	return out
}

// OverdueNote is a note viewed through the date bucket it came from.
type OverdueNote struct {
	Note Note
	Date timeutil.Date
}

func (o OverdueNote) ID() string        { return o.Note.ID }
func (o OverdueNote) Text() string      { return o.Note.Text }
func (o OverdueNote) IsCompleted() bool { return o.Note.IsCompleted }
