package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"tableflip.dev/noter/pkg/note"
)

// decodeNotes parses a stored notes payload. An empty payload is an empty
// list.
func decodeNotes(data []byte) ([]note.Note, error) {
	out := make([]note.Note, 0)
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return make([]note.Note, 0), err
	}
	if out == nil {
		out = make([]note.Note, 0)
	}
	return out, nil
}

func encodeNotes(notes []note.Note) ([]byte, error) {
	if notes == nil {
		notes = []note.Note{}
	}
	return json.Marshal(notes)
}

func decodeJournal(data []byte) ([]note.JournalEntry, error) {
	out := make([]note.JournalEntry, 0)
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return make([]note.JournalEntry, 0), err
	}
	if out == nil {
		out = make([]note.JournalEntry, 0)
	}
	return out, nil
}

func encodeJournal(entries []note.JournalEntry) ([]byte, error) {
	if entries == nil {
		entries = []note.JournalEntry{}
	}
	return json.Marshal(entries)
}

// checkNoteIDs rejects empty and repeated ids.
func checkNoteIDs(notes []note.Note) error {
	seen := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		if n.ID == "" {
			return fmt.Errorf("%w: note", ErrMissingID)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

func checkJournalIDs(entries []note.JournalEntry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("%w: journal entry", ErrMissingID)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
