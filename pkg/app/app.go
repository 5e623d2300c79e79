package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/noter/pkg/journal"
	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/notes"
	"tableflip.dev/noter/pkg/overdue"
	"tableflip.dev/noter/pkg/repository"
	"tableflip.dev/noter/pkg/store"
	"tableflip.dev/noter/pkg/timeutil"
	"tableflip.dev/noter/pkg/window"
)

// ErrNoteNotFound is returned when no bucket holds the requested note id.
var ErrNoteNotFound = errors.New("app: note not found")

// Service is one session over a store: the repository and cache, the day
// window, the overdue view and the journal. UIs and CLIs share it.
type Service struct {
	Repo    *repository.Repository
	Window  *window.Window
	Overdue *overdue.Aggregator
	Journal *journal.Service

	persistence store.Persistence
	cfg         *store.Config
	clock       timeutil.Clock
	log         *slog.Logger
}

// Option configures a Service.
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

// Open wires a session over p. A nil cfg uses store.DefaultConfig. The day
// window is built around today.
func Open(p store.Persistence, cfg *store.Config, opts ...Option) (*Service, error) {
	if p == nil {
		return nil, errors.New("app: no persistence configured")
	}
	if cfg == nil {
		cfg = store.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{persistence: p, cfg: cfg, log: slog.Default()}
	for _, o := range opts {
		o(s)
	}

	s.Repo = repository.New(p,
		repository.WithClock(s.clock),
		repository.WithLogger(s.log.With("component", "repository")),
		repository.WithExportWindow(cfg.ExportWindow),
	)
	s.Window = window.New(s.Repo,
		window.WithSize(cfg.WindowSize),
		window.WithExpansion(cfg.ExpandStep, cfg.Threshold),
		window.WithClock(s.clock),
		window.WithLogger(s.log.With("component", "window")),
	)
	s.Overdue = overdue.New(s.Repo,
		overdue.WithClock(s.clock),
		overdue.WithLookback(cfg.LookbackDays()),
		overdue.WithLogger(s.log.With("component", "overdue")),
	)
	s.Journal = journal.New(s.Repo,
		journal.WithClock(s.clock),
		journal.WithLogger(s.log.With("component", "journal")),
	)
	s.Window.Initialize(s.Today())
	return s, nil
}

// Config returns the settings the session was opened with.
func (s *Service) Config() *store.Config { return s.cfg }

// Today is the current calendar day, evaluated on every call.
func (s *Service) Today() timeutil.Date { return s.clock.Today() }

// Notes opens the editable list for d.
func (s *Service) Notes(d timeutil.Date, opts ...notes.Option) *notes.List {
	opts = append([]notes.Option{notes.WithLogger(s.log.With("component", "notes"))}, opts...)
	return notes.NewList(notes.DateBucket(s.Repo, d), opts...)
}

// Future opens the editable undated list.
func (s *Service) Future(opts ...notes.Option) *notes.List {
	opts = append([]notes.Option{notes.WithLogger(s.log.With("component", "notes"))}, opts...)
	return notes.NewList(notes.FutureBucket(s.Repo), opts...)
}

// RefreshData resyncs everything a view shows after it becomes active again.
// The window is rebuilt around today when the session has drifted, refreshed
// otherwise.
func (s *Service) RefreshData() {
	s.Repo.InvalidateFutureNotesCache()
	s.Repo.InvalidateJournalCache()
	if s.Window.Resume() {
		s.log.Debug("window rebuilt around today", "today", s.Today())
	}
}

// RefreshOverdueNotes recomputes the overdue view.
func (s *Service) RefreshOverdueNotes() []note.OverdueNote {
	return s.Overdue.Refresh()
}

// ExportAllData renders the backup document for the export window.
func (s *Service) ExportAllData() (string, error) {
	data, err := s.Repo.ExportAll()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExportStoredData renders every bucket in the store.
func (s *Service) ExportStoredData(ctx context.Context) (string, error) {
	data, err := s.Repo.ExportStored(ctx)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Import restores a backup and refreshes the views on success.
func (s *Service) Import(data string) error {
	if err := s.Repo.ImportAll([]byte(data)); err != nil {
		return err
	}
	s.Window.RefreshAll()
	s.Overdue.Refresh()
	return nil
}

// ImportAllData is Import reduced to success or failure.
func (s *Service) ImportAllData(data string) bool {
	if err := s.Import(data); err != nil {
		s.log.Warn("import failed", "err", err)
		return false
	}
	return true
}

// LowMemory drops every cached bucket. Nothing durable is lost.
func (s *Service) LowMemory() {
	s.Repo.ClearCache()
}

// TodaySummary describes today's notes for the info block.
func (s *Service) TodaySummary() string {
	return DaySummary(s.Repo.LoadNotes(s.Today()))
}

// DaySummary describes a day's notes.
func DaySummary(list []note.Note) string {
	total, open := 0, 0
	for _, n := range list {
		if n.IsBlank() {
			continue
		}
		total++
		if !n.IsCompleted {
			open++
		}
	}
	switch {
	case total == 0:
		return "No tasks for today"
	case open == 0:
		return "All tasks completed!"
	}
	return fmt.Sprintf("%d of %d tasks remaining", open, total)
}

// Watch subscribes to store changes. Apply feeds each event back into the
// cache.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	return s.persistence.Watch(ctx)
}

// Apply drops whatever cached state ev makes stale.
// It reports false for a key change that only echoes this session's own
// write, leaving the cache alone.
func (s *Service) Apply(ev store.Event) bool {
	switch ev.Type {
	case store.EventKeyChanged:
		if s.Repo.OwnWrite(ev.Key) {
			return false
		}
		s.Repo.InvalidateKey(ev.Key)
	default:
		s.Repo.ClearCache()
	}
	return true
}

// Located is a note together with the bucket it lives in.
type Located struct {
	Note   note.Note
	Bucket notes.Bucket
	// Date is zero for the future bucket.
	Date timeutil.Date
}

// Locate finds id in the future bucket or any stored day.
func (s *Service) Locate(ctx context.Context, id string) (Located, error) {
	if id == "" {
		return Located{}, ErrNoteNotFound
	}
	s.Repo.InvalidateFutureNotesCache()
	future := s.Repo.LoadFutureNotes()
	if i := note.IndexOf(future, id); i >= 0 {
		return Located{Note: future[i], Bucket: notes.FutureBucket(s.Repo)}, nil
	}
	for _, key := range s.persistence.Keys(ctx) {
		if err := ctx.Err(); err != nil {
			return Located{}, err
		}
		kind, d, ok := repository.ParseKey(key)
		if !ok || kind != repository.KindDateNotes {
			continue
		}
		s.Repo.InvalidateCache(d)
		list := s.Repo.LoadNotes(d)
		if i := note.IndexOf(list, id); i >= 0 {
			return Located{Note: list[i], Bucket: notes.DateBucket(s.Repo, d), Date: d}, nil
		}
	}
	return Located{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
}

// Add appends a note with text to d, or to the future list when d is nil.
func (s *Service) Add(d *timeutil.Date, text string) (note.Note, error) {
	var list *notes.List
	if d == nil {
		list = s.Future()
	} else {
		list = s.Notes(*d)
	}
	// Another process may have written the bucket since it was cached.
	list.Reload()
	return list.Append(text)
}

// Edit replaces the text of id wherever it lives.
func (s *Service) Edit(ctx context.Context, id, text string) (Located, error) {
	loc, err := s.Locate(ctx, id)
	if err != nil {
		return Located{}, err
	}
	if err := notes.EditNote(loc.Bucket, id, text, s.log); err != nil {
		return Located{}, err
	}
	loc.Note.Text = text
	return loc, nil
}

// SetCompleted marks id done or open wherever it lives.
func (s *Service) SetCompleted(ctx context.Context, id string, done bool) (Located, error) {
	loc, err := s.Locate(ctx, id)
	if err != nil {
		return Located{}, err
	}
	if err := notes.SetNoteCompleted(loc.Bucket, id, done, s.log); err != nil {
		return Located{}, err
	}
	loc.Note.IsCompleted = done
	return loc, nil
}

// Delete removes id wherever it lives.
func (s *Service) Delete(ctx context.Context, id string) (Located, error) {
	loc, err := s.Locate(ctx, id)
	if err != nil {
		return Located{}, err
	}
	if err := notes.DeleteNote(loc.Bucket, id, s.log); err != nil {
		return Located{}, err
	}
	return loc, nil
}
