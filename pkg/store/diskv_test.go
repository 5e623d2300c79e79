package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func stores(t *testing.T) map[string]Persistence {
	t.Helper()
	disk, err := Load(&Config{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return map[string]Persistence{
		"diskv":  disk,
		"memory": NewMemory(),
	}
}

func TestPersistenceReadWriteErase(t *testing.T) {
	for name, p := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := p.Read("notes_2024-06-01"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if p.Has("notes_2024-06-01") {
				t.Fatal("expected key to be absent")
			}

			if err := p.Write("notes_2024-06-01", []byte(`[{"id":"a"}]`)); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := p.Read("notes_2024-06-01")
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(got) != `[{"id":"a"}]` {
				t.Fatalf("unexpected value %s", got)
			}

			if err := p.Erase("notes_2024-06-01"); err != nil {
				t.Fatalf("erase: %v", err)
			}
			if err := p.Erase("notes_2024-06-01"); err != nil {
				t.Fatalf("erase of missing key should be a no-op, got %v", err)
			}
			if _, err := p.Read("notes_2024-06-01"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after erase, got %v", err)
			}
		})
	}
}

func TestPersistenceKeysSorted(t *testing.T) {
	for name, p := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"notes_2024-06-02", "future_notes", "journal", "notes_2024-05-30"} {
				if err := p.Write(k, []byte(`[]`)); err != nil {
					t.Fatalf("write %s: %v", k, err)
				}
			}
			got := p.Keys(context.Background())
			want := []string{"future_notes", "journal", "notes_2024-05-30", "notes_2024-06-02"}
			if len(got) != len(want) {
				t.Fatalf("expected %v, got %v", want, got)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("expected %v, got %v", want, got)
				}
			}
		})
	}
}

func TestPersistenceRejectsBadKeys(t *testing.T) {
	for name, p := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"", "  ", "a/b", `a\b`} {
				if err := p.Write(k, []byte("x")); err == nil {
					t.Fatalf("expected error for key %q", k)
				}
			}
		})
	}
}

func TestDiskvLayoutGroupsDatesByMonth(t *testing.T) {
	base := t.TempDir()
	p, err := Load(&Config{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := p.Write("notes_2024-06-01", []byte(`[]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := p.Write("future_notes", []byte(`[]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "notes", "2024-06", "notes_2024-06-01")); err != nil {
		t.Fatalf("expected month directory layout: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "future_notes")); err != nil {
		t.Fatalf("expected fixed bucket at root: %v", err)
	}
}

func TestDiskvSeesOutOfBandEdits(t *testing.T) {
	base := t.TempDir()
	p, err := Load(&Config{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := p.Write("journal", []byte(`[]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := p.Read("journal"); err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := os.WriteFile(filepath.Join(base, "journal"), []byte(`[{"id":"x"}]`), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	got, err := p.Read("journal")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `[{"id":"x"}]` {
		t.Fatalf("expected out-of-band content, got %s", got)
	}
}
