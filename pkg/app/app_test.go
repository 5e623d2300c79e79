package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/store"
	"tableflip.dev/noter/pkg/timeutil"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newService(t *testing.T) (*Service, *store.Memory, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}
	mem := store.NewMemory()
	cfg := store.DefaultConfig()
	cfg.WindowSize = 11
	svc, err := Open(mem, cfg, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return svc, mem, clock
}

func day(v string) timeutil.Date { return timeutil.MustDate(v) }

func TestOpenRequiresPersistence(t *testing.T) {
	if _, err := Open(nil, nil); err == nil {
		t.Fatal("expected error without persistence")
	}
	cfg := store.DefaultConfig()
	cfg.WindowSize = 0
	if _, err := Open(store.NewMemory(), cfg); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
}

func TestOpenBuildsWindowAroundToday(t *testing.T) {
	svc, _, _ := newService(t)
	if svc.Window.Len() != 11 {
		t.Fatalf("expected 11 days, got %d", svc.Window.Len())
	}
	today, ok := svc.Window.Today()
	if !ok || today.Date != day("2024-06-15") {
		t.Fatalf("expected today in the window, got %v", today.Date)
	}
}

func TestAddEditCompleteDelete(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	d := day("2024-06-10")

	n, err := svc.Add(&d, "call mum")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	f, err := svc.Add(nil, "learn piano")
	if err != nil {
		t.Fatalf("add future: %v", err)
	}

	loc, err := svc.Edit(ctx, n.ID, "call mum back")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if loc.Date != d || loc.Note.Text != "call mum back" {
		t.Fatalf("unexpected location %+v", loc)
	}
	if got := svc.Repo.LoadNotes(d); got[0].Text != "call mum back" {
		t.Fatalf("edit not stored: %+v", got)
	}

	if _, err := svc.SetCompleted(ctx, f.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := svc.Repo.LoadFutureNotes(); !got[0].IsCompleted {
		t.Fatalf("completion not stored: %+v", got)
	}

	if _, err := svc.Delete(ctx, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := svc.Repo.LoadNotes(d); len(got) != 0 {
		t.Fatalf("expected empty day, got %+v", got)
	}
	if _, err := svc.Delete(ctx, n.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestRefreshDataSeesOutOfBandEdits(t *testing.T) {
	svc, mem, clock := newService(t)
	if err := mem.Write("notes_2024-06-15", []byte(`[{"id":"x","text":"from elsewhere"}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	svc.RefreshData()
	today, _ := svc.Window.Today()
	if len(today.Notes) != 1 {
		t.Fatalf("expected refreshed notes, got %+v", today.Notes)
	}

	clock.now = clock.now.AddDate(0, 0, 10)
	svc.RefreshData()
	if svc.Window.Pivot() != day("2024-06-25") {
		t.Fatalf("expected window rebuilt around new today, pivot %s", svc.Window.Pivot())
	}
}

func TestRefreshOverdueNotes(t *testing.T) {
	svc, _, _ := newService(t)
	if err := svc.Repo.SaveNotes(day("2024-06-01"), []note.Note{{ID: "a", Text: "buy milk"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := svc.RefreshOverdueNotes()
	if len(got) != 1 || got[0].ID() != "a" {
		t.Fatalf("unexpected overdue %+v", got)
	}
	if svc.Overdue.Summary() != "You have 1 overdue tasks" {
		t.Fatalf("unexpected summary %q", svc.Overdue.Summary())
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src, _, _ := newService(t)
	d := day("2024-06-14")
	if _, err := src.Add(&d, "yesterday"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := src.Add(nil, "someday"); err != nil {
		t.Fatalf("add: %v", err)
	}
	blob, err := src.ExportAllData()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	dst, _, _ := newService(t)
	if !dst.ImportAllData(blob) {
		t.Fatal("import failed")
	}
	if got := dst.Repo.LoadNotes(d); len(got) != 1 || got[0].Text != "yesterday" {
		t.Fatalf("unexpected imported day %+v", got)
	}
	if got := dst.Overdue.Notes(); len(got) != 1 {
		t.Fatalf("expected overdue view refreshed after import, got %+v", got)
	}
	idx := dst.Window.IndexOf(d)
	if dayView, _ := dst.Window.Day(idx); len(dayView.Notes) != 1 {
		t.Fatalf("expected window refreshed after import, got %+v", dayView.Notes)
	}
	if dst.ImportAllData("{broken") {
		t.Fatal("expected malformed import to fail")
	}
}

func TestExportStoredData(t *testing.T) {
	svc, _, _ := newService(t)
	old := day("2023-01-01")
	if _, err := svc.Add(&old, "ancient"); err != nil {
		t.Fatalf("add: %v", err)
	}
	window, err := svc.ExportAllData()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.Contains(window, "notes_2023-01-01") {
		t.Fatal("window export should not include old days")
	}
	all, err := svc.ExportStoredData(context.Background())
	if err != nil {
		t.Fatalf("export stored: %v", err)
	}
	if !strings.Contains(all, "notes_2023-01-01") {
		t.Fatal("stored export should include old days")
	}
}

func TestLowMemoryKeepsData(t *testing.T) {
	svc, _, _ := newService(t)
	d := day("2024-06-15")
	if _, err := svc.Add(&d, "keep me"); err != nil {
		t.Fatalf("add: %v", err)
	}
	svc.LowMemory()
	if stats := svc.Repo.Cache().Stats(); stats.Dates != 0 {
		t.Fatalf("expected empty cache, got %+v", stats)
	}
	if got := svc.Repo.LoadNotes(d); len(got) != 1 {
		t.Fatalf("data lost after clearing cache: %+v", got)
	}
}

func TestDaySummary(t *testing.T) {
	tests := []struct {
		notes []note.Note
		want  string
	}{
		{nil, "No tasks for today"},
		{[]note.Note{{ID: "a", Text: " "}}, "No tasks for today"},
		{[]note.Note{{ID: "a", Text: "x", IsCompleted: true}}, "All tasks completed!"},
		{[]note.Note{{ID: "a", Text: "x", IsCompleted: true}, {ID: "b", Text: "y"}}, "1 of 2 tasks remaining"},
	}
	for _, tc := range tests {
		if got := DaySummary(tc.notes); got != tc.want {
			t.Fatalf("DaySummary(%+v) = %q, want %q", tc.notes, got, tc.want)
		}
	}
}

func TestApplyInvalidatesKey(t *testing.T) {
	svc, mem, _ := newService(t)
	d := day("2024-06-15")
	svc.Repo.LoadNotes(d)
	if err := mem.Write("notes_2024-06-15", []byte(`[{"id":"x","text":"new"}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	svc.Apply(store.Event{Type: store.EventKeyChanged, Key: "notes_2024-06-15"})
	if got := svc.Repo.LoadNotes(d); len(got) != 1 {
		t.Fatalf("expected invalidated day, got %+v", got)
	}
	svc.Apply(store.Event{Type: store.EventInvalidated})
	if stats := svc.Repo.Cache().Stats(); stats.Dates != 0 {
		t.Fatalf("expected cache cleared, got %+v", stats)
	}
}

func TestApplySkipsOwnWrites(t *testing.T) {
	svc, mem, _ := newService(t)
	d := day("2024-06-15")
	if _, err := svc.Add(&d, "mine"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if svc.Apply(store.Event{Type: store.EventKeyChanged, Key: "notes_2024-06-15"}) {
		t.Fatal("expected echo of own write to be skipped")
	}
	if err := mem.Write("notes_2024-06-15", []byte(`[]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !svc.Apply(store.Event{Type: store.EventKeyChanged, Key: "notes_2024-06-15"}) {
		t.Fatal("expected outside write to be applied")
	}
	if got := svc.Repo.LoadNotes(d); len(got) != 0 {
		t.Fatalf("expected outside write to win, got %+v", got)
	}
}

func TestAddSeesOtherSessionWrites(t *testing.T) {
	first, mem, clock := newService(t)
	second, err := Open(mem, store.DefaultConfig(), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("open second session: %v", err)
	}
	d := day("2024-06-15")

	for _, step := range []struct {
		svc  *Service
		text string
	}{{first, "from mcp 1"}, {second, "from cli"}, {first, "from mcp 2"}} {
		if _, err := step.svc.Add(&d, step.text); err != nil {
			t.Fatalf("add %q: %v", step.text, err)
		}
	}
	if _, err := second.Add(nil, "someday"); err != nil {
		t.Fatalf("add future: %v", err)
	}
	if _, err := first.Add(nil, "later"); err != nil {
		t.Fatalf("add future: %v", err)
	}

	first.Repo.InvalidateCache(d)
	got := first.Repo.LoadNotes(d)
	if len(got) != 3 {
		t.Fatalf("expected 3 notes, got %+v", got)
	}
	if future := first.Repo.LoadFutureNotes(); len(future) != 2 {
		t.Fatalf("expected 2 future notes, got %+v", future)
	}
}

func TestMigrate(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	from := day("2024-06-10")
	n, err := svc.Add(&from, "carry me")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	loc, err := svc.Migrate(ctx, n.ID, nil)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !loc.Date.IsZero() || loc.Note.ID != n.ID {
		t.Fatalf("unexpected location %+v", loc)
	}
	if len(svc.Repo.LoadNotes(from)) != 0 || len(svc.Repo.LoadFutureNotes()) != 1 {
		t.Fatal("note was not moved to the future list")
	}
}

func TestMigrateOverdue(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	if err := svc.Repo.SaveNotes(day("2024-06-01"), []note.Note{{ID: "a", Text: "late"}, {ID: "b", Text: "done", IsCompleted: true}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Repo.SaveNotes(day("2024-06-15"), []note.Note{{ID: "a", Text: "same id today"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	moved, err := svc.MigrateOverdue(ctx)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if len(moved) != 1 || moved[0].Note.ID == "a" {
		t.Fatalf("expected one moved note with a fresh id, got %+v", moved)
	}
	if got := svc.Repo.LoadNotes(day("2024-06-01")); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected only the completed note left behind, got %+v", got)
	}
	if got := svc.Repo.LoadNotes(day("2024-06-15")); len(got) != 2 {
		t.Fatalf("expected two notes today, got %+v", got)
	}
	if len(svc.Overdue.Notes()) != 0 {
		t.Fatalf("expected no overdue notes left, got %+v", svc.Overdue.Notes())
	}
}

func TestReport(t *testing.T) {
	svc, _, _ := newService(t)
	_ = svc.Repo.SaveNotes(day("2024-06-10"), []note.Note{{ID: "a", Text: "done", IsCompleted: true}, {ID: "b", Text: "open"}})
	_ = svc.Repo.SaveNotes(day("2024-06-12"), []note.Note{{ID: "c", Text: "done too", IsCompleted: true}})
	_ = svc.Repo.SaveNotes(day("2024-06-20"), []note.Note{{ID: "d", Text: "later", IsCompleted: true}})

	res := svc.Report(day("2024-06-14"), day("2024-06-08"))
	if res.Since != day("2024-06-08") || res.Until != day("2024-06-14") {
		t.Fatalf("expected swapped bounds, got %s..%s", res.Since, res.Until)
	}
	if res.Total != 2 || res.Open != 1 || len(res.Sections) != 2 {
		t.Fatalf("unexpected report %+v", res)
	}
	if res.Sections[0].Date != day("2024-06-10") {
		t.Fatalf("expected oldest day first, got %s", res.Sections[0].Date)
	}
}
