package repository

import (
	"encoding/json"
	"testing"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/timeutil"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  string
		kind Kind
		date string
		ok   bool
	}{
		{key: "notes_2024-06-01", kind: KindDateNotes, date: "2024-06-01", ok: true},
		{key: "future_notes", kind: KindFutureNotes, ok: true},
		{key: "journal", kind: KindJournal, ok: true},
		{key: "notes_2024-13-01"},
		{key: "notes_"},
		{key: "settings"},
	}
	for _, tc := range tests {
		kind, d, ok := ParseKey(tc.key)
		if ok != tc.ok || kind != tc.kind {
			t.Fatalf("ParseKey(%q) = %v, %v; want %v, %v", tc.key, kind, ok, tc.kind, tc.ok)
		}
		if tc.date != "" && d != timeutil.MustDate(tc.date) {
			t.Fatalf("ParseKey(%q) date = %s", tc.key, d)
		}
	}
}

func TestDocumentMarshalSortsKeys(t *testing.T) {
	doc := Document{Buckets: []Bucket{
		{Kind: KindJournal, Journal: []note.JournalEntry{{ID: "j"}}},
		{Kind: KindDateNotes, Date: timeutil.MustDate("2024-06-02"), Notes: []note.Note{{ID: "b"}}},
		{Kind: KindFutureNotes},
		{Kind: KindDateNotes, Date: timeutil.MustDate("2024-06-01"), Notes: []note.Note{{ID: "a"}}},
	}}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"future_notes":[],"journal":[{"id":"j","content":"","createdAt":"","updatedAt":""}],` +
		`"notes_2024-06-01":[{"id":"a","text":"","isCompleted":false}],` +
		`"notes_2024-06-02":[{"id":"b","text":"","isCompleted":false}]}`
	if string(data) != want {
		t.Fatalf("unexpected document:\n got %s\nwant %s", data, want)
	}
}

func TestParseDocumentNullBucketIsEmpty(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"future_notes":null}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Buckets) != 1 || doc.Buckets[0].Notes == nil || doc.Buckets[0].Len() != 0 {
		t.Fatalf("expected one empty bucket, got %+v", doc.Buckets)
	}
}
