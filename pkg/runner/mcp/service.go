// Package mcp provides the Model Context Protocol server integration for noter.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/notes"
	"tableflip.dev/noter/pkg/timeutil"
)

// Service adapts an app session to the shapes exposed by the MCP server.
type Service struct {
	App *app.Service
}

// NoteDTO is a transport-friendly projection of a note.
type NoteDTO struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
	// Bucket is a date (YYYY-MM-DD) or "future".
	Bucket string `json:"bucket"`
}

// DayDTO describes one day and its notes.
type DayDTO struct {
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Remaining int       `json:"remaining"`
	Notes     []NoteDTO `json:"notes"`
}

// OverdueDTO is an unfinished note from an earlier day.
type OverdueDTO struct {
	NoteDTO
	DaysLate int `json:"daysLate"`
}

// JournalDTO is a journal entry with its derived title.
type JournalDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Preview string `json:"preview,omitempty"`
	Content string `json:"content"`
	Created string `json:"created"`
	Updated string `json:"updated"`
}

// UpdateNoteOptions carries the optional edits applied by UpdateNote.
type UpdateNoteOptions struct {
	ID        string
	Text      *string
	Completed *bool
}

// NewService builds a service wrapper over an open session.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return errors.New("noter session is not configured")
	}
	return nil
}

// Day returns the notes stored for date. An empty date means today.
func (s *Service) Day(ctx context.Context, date string) (*DayDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	d, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	s.App.Repo.InvalidateCache(d)
	list := s.App.Repo.LoadNotes(d)
	dto := &DayDTO{
		Date:      d.String(),
		Title:     fmt.Sprintf("%s, %d %s", d.Weekday(), d.Day(), d.Month()),
		Summary:   app.DaySummary(list),
		Remaining: len(note.Incomplete(list)),
		Notes:     toNoteDTOs(list, d.String()),
	}
	return dto, nil
}

// Future returns the undated notes.
func (s *Service) Future(ctx context.Context) ([]NoteDTO, string, error) {
	if err := s.ready(); err != nil {
		return nil, "", err
	}
	s.App.Repo.InvalidateFutureNotesCache()
	list := s.App.Repo.LoadFutureNotes()
	return toNoteDTOs(list, "future"), notes.FutureSummary(list), nil
}

// AddNote appends text to date, or to the future list when date is "future".
func (s *Service) AddNote(ctx context.Context, date, text string) (*NoteDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text is required")
	}
	var target *timeutil.Date
	bucket := "future"
	if !isFuture(date) {
		d, err := s.parseDate(date)
		if err != nil {
			return nil, err
		}
		target = &d
		bucket = d.String()
	}
	n, err := s.App.Add(target, text)
	if err != nil {
		return nil, err
	}
	dto := toNoteDTO(n, bucket)
	return &dto, nil
}

// UpdateNote edits text and completion of a note wherever it lives.
func (s *Service) UpdateNote(ctx context.Context, opts UpdateNoteOptions) (*NoteDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if opts.ID == "" {
		return nil, errors.New("id is required")
	}
	if opts.Text == nil && opts.Completed == nil {
		return nil, errors.New("nothing to update: provide text or completed")
	}

	var loc app.Located
	var err error
	if opts.Text != nil {
		if loc, err = s.App.Edit(ctx, opts.ID, *opts.Text); err != nil {
			return nil, err
		}
	}
	if opts.Completed != nil {
		if loc, err = s.App.SetCompleted(ctx, opts.ID, *opts.Completed); err != nil {
			return nil, err
		}
	}
	s.App.Overdue.Refresh()
	dto := toNoteDTO(loc.Note, loc.Bucket.Name())
	return &dto, nil
}

// DeleteNote removes a note wherever it lives.
func (s *Service) DeleteNote(ctx context.Context, id string) (*NoteDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	loc, err := s.App.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.App.Overdue.Refresh()
	dto := toNoteDTO(loc.Note, loc.Bucket.Name())
	return &dto, nil
}

// MoveNote migrates a note to date, or to the future list.
func (s *Service) MoveNote(ctx context.Context, id, date string) (*NoteDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var target *timeutil.Date
	if !isFuture(date) {
		d, err := s.parseDate(date)
		if err != nil {
			return nil, err
		}
		target = &d
	}
	loc, err := s.App.Migrate(ctx, id, target)
	if err != nil {
		return nil, err
	}
	s.App.Overdue.Refresh()
	dto := toNoteDTO(loc.Note, loc.Bucket.Name())
	return &dto, nil
}

// Overdue recomputes unfinished notes from the last lookback days. A
// lookback of zero uses the configured default.
func (s *Service) Overdue(ctx context.Context, lookback int) ([]OverdueDTO, string, error) {
	if err := s.ready(); err != nil {
		return nil, "", err
	}
	if lookback < 0 {
		return nil, "", fmt.Errorf("lookback must not be negative, got %d", lookback)
	}
	if lookback == 0 {
		lookback = s.App.Overdue.Lookback()
	}
	list := s.App.Overdue.Compute(lookback)
	today := s.App.Today()
	out := make([]OverdueDTO, 0, len(list))
	for _, o := range list {
		out = append(out, OverdueDTO{
			NoteDTO:  toNoteDTO(o.Note, o.Date.String()),
			DaysLate: o.Date.DaysUntil(today),
		})
	}
	return out, s.App.Overdue.Summary(), nil
}

// Journal lists journal entries, newest first.
func (s *Service) Journal(ctx context.Context) ([]JournalDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.App.Repo.InvalidateJournalCache()
	entries := s.App.Journal.Entries()
	out := make([]JournalDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toJournalDTO(e))
	}
	return out, nil
}

// WriteJournal creates or updates an entry. Blank content deletes it, in
// which case the returned entry is nil.
func (s *Service) WriteJournal(ctx context.Context, id, content string) (*JournalDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, kept, err := s.App.Journal.Save(id, content)
	if err != nil {
		return nil, err
	}
	if !kept {
		return nil, nil
	}
	dto := toJournalDTO(e)
	return &dto, nil
}

// Export renders a backup document. With all set every stored day is
// included, otherwise only the export window around today.
func (s *Service) Export(ctx context.Context, all bool) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if all {
		return s.App.ExportStoredData(ctx)
	}
	return s.App.ExportAllData()
}

// Import restores a backup document. Nothing is written when data is
// malformed.
func (s *Service) Import(ctx context.Context, data string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(data) == "" {
		return errors.New("data is required")
	}
	return s.App.Import(data)
}

func (s *Service) parseDate(v string) (timeutil.Date, error) {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "today":
		return s.App.Today(), nil
	case "yesterday":
		return s.App.Today().AddDays(-1), nil
	case "tomorrow":
		return s.App.Today().AddDays(1), nil
	}
	return timeutil.ParseDate(v)
}

func isFuture(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "future")
}

func toNoteDTO(n note.Note, bucket string) NoteDTO {
	return NoteDTO{ID: n.ID, Text: n.Text, IsCompleted: n.IsCompleted, Bucket: bucket}
}

func toNoteDTOs(list []note.Note, bucket string) []NoteDTO {
	out := make([]NoteDTO, 0, len(list))
	for _, n := range list {
		out = append(out, toNoteDTO(n, bucket))
	}
	return out
}

func toJournalDTO(e note.JournalEntry) JournalDTO {
	return JournalDTO{
		ID:      e.ID,
		Title:   e.Title(),
		Preview: e.Preview(),
		Content: e.Content,
		Created: e.CreatedAt.Time.Format(time.RFC3339),
		Updated: e.UpdatedAt.Time.Format(time.RFC3339),
	}
}
