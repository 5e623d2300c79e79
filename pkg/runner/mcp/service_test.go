package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/store"
	"tableflip.dev/noter/pkg/timeutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := store.DefaultConfig()
	cfg.WindowSize = 7
	clock := timeutil.FixedClock(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC))
	a, err := app.Open(store.NewMemory(), cfg, app.WithClock(clock))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return NewService(a)
}

func TestServiceAddNoteDefaultsToToday(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.AddNote(ctx, "", "Buy milk")
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if dto.Bucket != "2024-06-15" {
		t.Fatalf("expected today's bucket, got %s", dto.Bucket)
	}
	if dto.ID == "" {
		t.Fatalf("expected generated id")
	}

	day, err := svc.Day(ctx, "today")
	if err != nil {
		t.Fatalf("Day failed: %v", err)
	}
	if len(day.Notes) != 1 || day.Notes[0].Text != "Buy milk" {
		t.Fatalf("unexpected notes %+v", day.Notes)
	}
	if day.Title != "Saturday, 15 June" {
		t.Fatalf("unexpected title %q", day.Title)
	}
	if day.Summary != "1 of 1 tasks remaining" {
		t.Fatalf("unexpected summary %q", day.Summary)
	}
}

func TestServiceAddNoteRejectsBlankText(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AddNote(context.Background(), "", "   "); err == nil {
		t.Fatal("expected error for blank text")
	}
	if _, err := svc.AddNote(context.Background(), "06/15/2024", "x"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestServiceUpdateNote(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.AddNote(ctx, "future", "Learn Go")
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if dto.Bucket != "future" {
		t.Fatalf("expected future bucket, got %s", dto.Bucket)
	}

	text := "Learn more Go"
	done := true
	updated, err := svc.UpdateNote(ctx, UpdateNoteOptions{ID: dto.ID, Text: &text, Completed: &done})
	if err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}
	if updated.Text != text || !updated.IsCompleted {
		t.Fatalf("unexpected note %+v", updated)
	}

	list, _, err := svc.Future(ctx)
	if err != nil {
		t.Fatalf("Future failed: %v", err)
	}
	if len(list) != 1 || list[0].Text != text || !list[0].IsCompleted {
		t.Fatalf("expected update persisted, got %+v", list)
	}

	if _, err := svc.UpdateNote(ctx, UpdateNoteOptions{ID: dto.ID}); err == nil {
		t.Fatal("expected error when nothing changes")
	}
	if _, err := svc.UpdateNote(ctx, UpdateNoteOptions{ID: "missing", Completed: &done}); !errors.Is(err, app.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestServiceOverdueAndMove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	late, err := svc.AddNote(ctx, "2024-06-12", "Call the bank")
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if _, err := svc.AddNote(ctx, "today", "Not overdue"); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	list, summary, err := svc.Overdue(ctx, 0)
	if err != nil {
		t.Fatalf("Overdue failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != late.ID {
		t.Fatalf("expected one overdue note, got %+v", list)
	}
	if list[0].DaysLate != 3 {
		t.Fatalf("expected 3 days late, got %d", list[0].DaysLate)
	}
	if summary != "You have 1 overdue tasks" {
		t.Fatalf("unexpected summary %q", summary)
	}

	if _, _, err := svc.Overdue(ctx, -1); err == nil {
		t.Fatal("expected error for negative lookback")
	}

	moved, err := svc.MoveNote(ctx, late.ID, "tomorrow")
	if err != nil {
		t.Fatalf("MoveNote failed: %v", err)
	}
	if moved.Bucket != "2024-06-16" || moved.ID != late.ID {
		t.Fatalf("unexpected move result %+v", moved)
	}
	list, _, _ = svc.Overdue(ctx, 0)
	if len(list) != 0 {
		t.Fatalf("expected no overdue notes after move, got %+v", list)
	}
}

func TestServiceDeleteNote(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.AddNote(ctx, "2024-06-14", "Temporary")
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if _, err := svc.DeleteNote(ctx, dto.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	day, _ := svc.Day(ctx, "yesterday")
	if len(day.Notes) != 0 {
		t.Fatalf("expected empty day, got %+v", day.Notes)
	}
}

func TestServiceJournal(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	entry, err := svc.WriteJournal(ctx, "", "Trip\nPacked the bags\nLeft early")
	if err != nil {
		t.Fatalf("WriteJournal failed: %v", err)
	}
	if entry.Title != "Trip" || entry.Preview != "Packed the bags Left early" {
		t.Fatalf("unexpected entry %+v", entry)
	}

	entries, err := svc.Journal(ctx)
	if err != nil {
		t.Fatalf("Journal failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Fatalf("unexpected entries %+v", entries)
	}

	gone, err := svc.WriteJournal(ctx, entry.ID, "  ")
	if err != nil {
		t.Fatalf("WriteJournal failed: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected blank content to delete, got %+v", gone)
	}
	entries, _ = svc.Journal(ctx)
	if len(entries) != 0 {
		t.Fatalf("expected journal empty, got %+v", entries)
	}
}

func TestServiceExportImport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.AddNote(ctx, "today", "Keep me"); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	data, err := svc.Export(ctx, false)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(data, `"notes_2024-06-15"`) || !strings.Contains(data, "Keep me") {
		t.Fatalf("export missing today's notes: %s", data)
	}

	other := newTestService(t)
	if err := other.Import(ctx, data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	day, _ := other.Day(ctx, "2024-06-15")
	if len(day.Notes) != 1 || day.Notes[0].Text != "Keep me" {
		t.Fatalf("expected imported note, got %+v", day.Notes)
	}

	if err := other.Import(ctx, "{not json"); err == nil {
		t.Fatal("expected malformed import to fail")
	}
	if err := other.Import(ctx, ""); err == nil {
		t.Fatal("expected empty import to fail")
	}
}

func TestServiceRequiresSession(t *testing.T) {
	var svc Service
	if _, err := svc.Day(context.Background(), ""); err == nil {
		t.Fatal("expected error without session")
	}
}
