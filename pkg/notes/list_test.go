package notes

import (
	"errors"
	"testing"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/repository"
	"tableflip.dev/noter/pkg/store"
	"tableflip.dev/noter/pkg/timeutil"
)

var day = timeutil.MustDate("2024-06-01")

func newRepo(t *testing.T, seed ...note.Note) *repository.Repository {
	t.Helper()
	repo := repository.New(store.NewMemory())
	if len(seed) > 0 {
		if err := repo.SaveNotes(day, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return repo
}

func ids(notes []note.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestAddNotePersists(t *testing.T) {
	repo := newRepo(t)
	ls := NewList(DateBucket(repo, day))

	n, err := ls.AddNote()
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if n.ID == "" || n.Text != "" || n.IsCompleted {
		t.Fatalf("unexpected new note %+v", n)
	}
	repo.InvalidateCache(day)
	stored := repo.LoadNotes(day)
	if len(stored) != 1 || stored[0].ID != n.ID {
		t.Fatalf("expected new note stored, got %+v", stored)
	}
}

func TestCommitDropsEmptyNote(t *testing.T) {
	repo := newRepo(t, note.Note{ID: "a", Text: "milk"}, note.Note{ID: "b", Text: "eggs"})
	ls := NewList(DateBucket(repo, day))

	if err := ls.SetText("b", "   "); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if got := len(ls.GetNotes()); got != 2 {
		t.Fatalf("edit alone should not drop the note, got %d", got)
	}
	if err := ls.Commit("b"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	got := ls.GetNotes()
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only note a, got %+v", got)
	}
	if stored := repo.LoadNotes(day); len(stored) != 1 {
		t.Fatalf("expected store to hold 1 note, got %+v", stored)
	}
}

func TestCommitKeepsOnlyNote(t *testing.T) {
	repo := newRepo(t, note.Note{ID: "a", Text: "milk"})
	ls := NewList(DateBucket(repo, day))

	if err := ls.SetText("a", ""); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if err := ls.Commit("a"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := ls.GetNotes(); len(got) != 1 || got[0].Text != "" {
		t.Fatalf("expected the sole note kept, got %+v", got)
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	repo := newRepo(t, note.Note{ID: "a", Text: "milk"})
	ls := NewList(DateBucket(repo, day))
	for name, fn := range map[string]func() error{
		"set text": func() error { return ls.SetText("zzz", "x") },
		"commit":   func() error { return ls.Commit("zzz") },
		"toggle":   func() error { return ls.Toggle("zzz") },
		"delete":   func() error { return ls.Delete("zzz") },
	} {
		if err := fn(); err != nil {
			t.Fatalf("%s: expected nil error, got %v", name, err)
		}
	}
	if got := ids(ls.Notes()); len(got) != 1 || got[0] != "a" {
		t.Fatalf("list changed: %v", got)
	}
}

func TestAllCompletedFiresOnEdge(t *testing.T) {
	repo := newRepo(t, note.Note{ID: "a", Text: "milk"}, note.Note{ID: "b", Text: "eggs"}, note.Note{ID: "c"})
	fired := 0
	ls := NewList(DateBucket(repo, day), OnAllCompleted(func() { fired++ }))

	if err := ls.Toggle("a"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if fired != 0 || ls.AllCompleted() {
		t.Fatalf("fired early: %d", fired)
	}
	if err := ls.Toggle("b"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if fired != 1 || !ls.AllCompleted() {
		t.Fatalf("expected one callback with blank note ignored, got %d", fired)
	}
	// Still complete: no second callback.
	if err := ls.SetText("a", "oat milk"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if fired != 1 {
		t.Fatalf("expected no repeat, got %d", fired)
	}
	if err := ls.Toggle("b"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := ls.SetCompleted("b", true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if fired != 2 {
		t.Fatalf("expected a second edge, got %d", fired)
	}
}

func TestAllCompletedNeedsVisibleNotes(t *testing.T) {
	ls := NewList(DateBucket(newRepo(t), day))
	if ls.AllCompleted() {
		t.Fatal("an empty list is not complete")
	}
	ls.SubmitList([]note.Note{{ID: "a", Text: " ", IsCompleted: true}})
	if ls.AllCompleted() {
		t.Fatal("blank notes do not count")
	}
}

func TestSubmitListDoesNotPersist(t *testing.T) {
	repo := newRepo(t, note.Note{ID: "a", Text: "milk"})
	ls := NewList(DateBucket(repo, day))
	ls.SubmitList([]note.Note{{ID: "x", Text: "draft"}})

	if got := ids(ls.GetNotes()); len(got) != 1 || got[0] != "x" {
		t.Fatalf("unexpected list %v", got)
	}
	if stored := repo.LoadNotes(day); stored[0].ID != "a" {
		t.Fatalf("store changed: %+v", stored)
	}
	ls.Reload()
	if got := ids(ls.GetNotes()); got[0] != "a" {
		t.Fatalf("reload should restore stored list, got %v", got)
	}
}

func TestFutureBucket(t *testing.T) {
	repo := newRepo(t)
	ls := NewList(FutureBucket(repo))
	if _, err := ls.Append("learn go"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := repo.LoadFutureNotes(); len(got) != 1 || got[0].Text != "learn go" {
		t.Fatalf("expected future note stored, got %+v", got)
	}
	if ls.Name() != "future" {
		t.Fatalf("unexpected name %q", ls.Name())
	}
}

type brokenBucket struct{ Bucket }

func (brokenBucket) Save([]note.Note) error { return errors.New("disk full") }

func TestSaveErrorsSurface(t *testing.T) {
	repo := newRepo(t, note.Note{ID: "a", Text: "milk"})
	ls := NewList(brokenBucket{DateBucket(repo, day)})
	if err := ls.Toggle("a"); err == nil {
		t.Fatal("expected save error")
	}
}

func TestEditAndDeleteNote(t *testing.T) {
	repo := newRepo(t, note.Note{ID: "a", Text: "milk"}, note.Note{ID: "b", Text: "eggs"})
	b := DateBucket(repo, day)

	// A stale cache must not win over the store.
	repo.LoadNotes(day)
	if err := repo.Store().Write(repository.NotesKey(day), []byte(`[{"id":"a","text":"milk"},{"id":"b","text":"eggs"},{"id":"c","text":"bread"}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := EditNote(b, "b", "brown eggs", nil); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := DeleteNote(b, "a", nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := SetNoteCompleted(b, "c", true, nil); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := EditNote(b, "missing", "x", nil); err != nil {
		t.Fatalf("missing id should be a no-op, got %v", err)
	}

	got := repo.LoadNotes(day)
	if len(got) != 2 || got[0].Text != "brown eggs" || !got[1].IsCompleted {
		t.Fatalf("unexpected bucket %+v", got)
	}
}

func TestFutureSummary(t *testing.T) {
	open := func(n int) []note.Note {
		out := make([]note.Note, n)
		for i := range out {
			out[i] = note.New()
		}
		return out
	}
	tests := []struct {
		n    int
		want string
	}{
		{0, "Work is not a wolf, it won't run off into the woods."},
		{5, "Work is not a wolf, it won't run off into the woods."},
		{6, "Don't just sit there, pick one and start."},
		{10, "Don't just sit there, pick one and start."},
		{12, "Tasks without a date wait here until you plan them."},
		{15, "Tasks without a date wait here until you plan them."},
		{16, "That pile is not going to shrink by itself."},
	}
	for _, tc := range tests {
		if got := FutureSummary(open(tc.n)); got != tc.want {
			t.Fatalf("FutureSummary(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
