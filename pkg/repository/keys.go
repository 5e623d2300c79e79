package repository

import (
	"strings"

	"tableflip.dev/noter/pkg/timeutil"
)

// Kind identifies what a store key holds.
type Kind int

const (
	KindUnknown Kind = iota
	KindDateNotes
	KindFutureNotes
	KindJournal
)

func (k Kind) String() string {
	switch k {
	case KindDateNotes:
		return "notes"
	case KindFutureNotes:
		return "future"
	case KindJournal:
		return "journal"
	}
	return "unknown"
}

const (
	// FutureNotesKey holds the undated "someday" bucket.
	FutureNotesKey = "future_notes"
	// JournalKey holds every journal entry.
	JournalKey = "journal"

	notesKeyPrefix = "notes_"
)

// NotesKey is the store key for the notes of d, e.g. "notes_2024-06-01".
func NotesKey(d timeutil.Date) string {
	return notesKeyPrefix + d.String()
}

// ParseKey classifies a store key. The date is only set for KindDateNotes.
func ParseKey(key string) (Kind, timeutil.Date, bool) {
	switch key {
	case FutureNotesKey:
		return KindFutureNotes, timeutil.Date{}, true
	case JournalKey:
		return KindJournal, timeutil.Date{}, true
	}
	if raw, ok := strings.CutPrefix(key, notesKeyPrefix); ok {
		d, err := timeutil.ParseDate(raw)
		if err != nil {
			return KindUnknown, timeutil.Date{}, false
		}
		return KindDateNotes, d, true
	}
	return KindUnknown, timeutil.Date{}, false
}
