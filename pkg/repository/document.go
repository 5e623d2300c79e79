package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/timeutil"
)

// ErrMalformedDocument is returned when a backup cannot be parsed.
var ErrMalformedDocument = errors.New("repository: malformed backup document")

// Bucket is one keyed list inside a backup. Exactly one of Notes or Journal is
// meaningful, selected by Kind.
type Bucket struct {
	Kind    Kind
	Date    timeutil.Date
	Notes   []note.Note
	Journal []note.JournalEntry
}

// Key returns the store key the bucket lives under.
func (b Bucket) Key() string {
	switch b.Kind {
	case KindDateNotes:
		return NotesKey(b.Date)
	case KindFutureNotes:
		return FutureNotesKey
	case KindJournal:
		return JournalKey
	}
	return ""
}

// Len is the number of records in the bucket.
func (b Bucket) Len() int {
	if b.Kind == KindJournal {
		return len(b.Journal)
	}
	return len(b.Notes)
}

// Document is a full backup: a JSON object keyed by store key whose values
// are the bucket arrays.
type Document struct {
	Buckets []Bucket
	// Skipped lists keys ParseDocument did not recognize.
	Skipped []string
}

// MarshalJSON writes the buckets as one object with keys in sorted order.
func (d Document) MarshalJSON() ([]byte, error) {
	buckets := make([]Bucket, len(d.Buckets))
	copy(buckets, d.Buckets)
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Key() < buckets[j].Key() })

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range buckets {
		key := b.Key()
		if key == "" {
			return nil, fmt.Errorf("repository: bucket %d has no kind", i)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')

		var (
			v   []byte
			err error
		)
		if b.Kind == KindJournal {
			v, err = encodeJournal(b.Journal)
		} else {
			v, err = encodeNotes(b.Notes)
		}
		if err != nil {
			return nil, fmt.Errorf("repository: encode %s: %w", key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseDocument decodes and validates a backup. Every recognized bucket must
// be an array of well-formed records with unique ids; unknown keys are
// collected in Skipped.
func ParseDocument(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if raw == nil {
		return Document{}, fmt.Errorf("%w: expected an object", ErrMalformedDocument)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var doc Document
	for _, key := range keys {
		kind, date, ok := ParseKey(key)
		if !ok {
			doc.Skipped = append(doc.Skipped, key)
			continue
		}
		value := raw[key]
		if !isArrayOrNull(value) {
			return Document{}, fmt.Errorf("%w: %s is not a list", ErrMalformedDocument, key)
		}
		b := Bucket{Kind: kind, Date: date}
		if kind == KindJournal {
			entries, err := decodeJournal(value)
			if err != nil {
				return Document{}, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, key, err)
			}
			if err := checkJournalIDs(entries); err != nil {
				return Document{}, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, key, err)
			}
			b.Journal = entries
		} else {
			notes, err := decodeNotes(value)
			if err != nil {
				return Document{}, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, key, err)
			}
			if err := checkNoteIDs(notes); err != nil {
				return Document{}, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, key, err)
			}
			b.Notes = notes
		}
		doc.Buckets = append(doc.Buckets, b)
	}
	return doc, nil
}

func isArrayOrNull(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) > 0 && (t[0] == '[' || bytes.Equal(t, []byte("null")))
}
