// Package journal edits the free-form journal kept alongside the notes.
package journal

import (
	"fmt"
	"log/slog"
	"strings"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/timeutil"
)

// Repository is the journal half of the note repository.
type Repository interface {
	LoadJournal() []note.JournalEntry
	SaveJournal(entries []note.JournalEntry) error
	InvalidateJournalCache()
}

// Service lists, saves and deletes journal entries. Entries are kept newest
// first.
type Service struct {
	repo  Repository
	clock timeutil.Clock
	log   *slog.Logger
}

type Option func(*Service)

func WithClock(c timeutil.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func New(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, log: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Entries returns a copy of every entry.
func (s *Service) Entries() []note.JournalEntry {
	return note.CloneJournal(s.repo.LoadJournal())
}

// Get returns the entry with id.
func (s *Service) Get(id string) (note.JournalEntry, bool) {
	for _, e := range s.repo.LoadJournal() {
		if e.ID == id {
			return e, true
		}
	}
	return note.JournalEntry{}, false
}

// Save stores content under id. An empty id, or one not yet in the journal,
// creates a new entry at the front. Content that is blank after trimming
// deletes the entry instead; the returned bool is false in that case.
func (s *Service) Save(id, content string) (note.JournalEntry, bool, error) {
	if strings.TrimSpace(content) == "" {
		if id != "" {
			if err := s.Delete(id); err != nil {
				return note.JournalEntry{}, false, err
			}
		}
		return note.JournalEntry{}, false, nil
	}

	now := s.clock.Now()
	entries := note.CloneJournal(s.repo.LoadJournal())
	idx := -1
	if id != "" {
		idx = indexOf(entries, id)
	}

	var e note.JournalEntry
	if idx >= 0 {
		e = entries[idx]
		e.Content = content
		e.UpdatedAt = note.Timestamp{Time: now}
		entries[idx] = e
	} else {
		e = note.NewJournalEntry(now)
		if id != "" {
			e.ID = id
		}
		e.Content = content
		entries = append([]note.JournalEntry{e}, entries...)
	}

	if err := s.persist(entries); err != nil {
		return note.JournalEntry{}, false, err
	}
	return e, true, nil
}

// Delete removes id. A missing entry is logged and ignored.
func (s *Service) Delete(id string) error {
	entries := note.CloneJournal(s.repo.LoadJournal())
	idx := indexOf(entries, id)
	if idx < 0 {
		s.log.Warn("journal entry not found", "id", id)
		return nil
	}
	return s.persist(append(entries[:idx], entries[idx+1:]...))
}

// Title is the first line of the entry.
func Title(e note.JournalEntry) string { return e.Title() }

// Preview is everything after the first line on one line.
func Preview(e note.JournalEntry) string { return e.Preview() }

func (s *Service) persist(entries []note.JournalEntry) error {
	if err := s.repo.SaveJournal(entries); err != nil {
		return fmt.Errorf("journal: save: %w", err)
	}
	s.repo.InvalidateJournalCache()
	return nil
}

func indexOf(entries []note.JournalEntry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
