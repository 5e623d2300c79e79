// Package repository is the cached access layer between noter's views and the
// persistent store. Reads go through the cache, writes go through to the
// store and then replace the cached bucket.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/store"
	"tableflip.dev/noter/pkg/timeutil"
)

// ErrDuplicateID is returned when a list carries the same id twice.
var ErrDuplicateID = errors.New("repository: duplicate id")

// ErrMissingID is returned when a record has an empty id.
var ErrMissingID = errors.New("repository: missing id")

// DefaultExportWindow is how many days either side of today ExportAll covers.
const DefaultExportWindow = 15

// Repository serves notes and journal entries out of a Cache backed by a
// store.Persistence.
type Repository struct {
	store        store.Persistence
	cache        *Cache
	clock        timeutil.Clock
	log          *slog.Logger
	exportWindow int

	mu      sync.Mutex
	written map[string][]byte
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the clock used to find today for exports.
func WithClock(c timeutil.Clock) Option {
	return func(r *Repository) { r.clock = c }
}

// WithLogger sets the logger for decode warnings and import reports.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.log = l
		}
	}
}

// WithExportWindow sets the number of days either side of today that
// ExportAll includes.
func WithExportWindow(days int) Option {
	return func(r *Repository) {
		if days >= 0 {
			r.exportWindow = days
		}
	}
}

// New returns a Repository with an empty cache.
func New(p store.Persistence, opts ...Option) *Repository {
	r := &Repository{
		store:        p,
		cache:        NewCache(),
		log:          slog.Default(),
		exportWindow: DefaultExportWindow,
		written:      make(map[string][]byte),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Cache exposes the repository cache for inspection.
func (r *Repository) Cache() *Cache { return r.cache }

// Store returns the underlying persistence.
func (r *Repository) Store() store.Persistence { return r.store }

// Today is the current day according to the repository clock.
func (r *Repository) Today() timeutil.Date { return r.clock.Today() }

// LoadNotes returns the notes for d. A cached bucket is returned as is, so
// repeated calls yield the same slice; callers must not modify it and should
// SaveNotes a copy instead. Missing or unreadable buckets are empty.
func (r *Repository) LoadNotes(d timeutil.Date) []note.Note {
	if cached, ok := r.cache.notes(d); ok {
		return cached
	}
	notes, cacheable := r.readNotes(NotesKey(d))
	if cacheable {
		r.cache.setNotes(d, notes)
	}
	return notes
}

// SaveNotes persists notes for d and makes them the cached bucket.
func (r *Repository) SaveNotes(d timeutil.Date, notes []note.Note) error {
	notes, err := r.writeNotes(NotesKey(d), notes)
	if err != nil {
		return err
	}
	r.cache.setNotes(d, notes)
	return nil
}

// DeleteNotes removes the bucket for d from the store and the cache.
func (r *Repository) DeleteNotes(d timeutil.Date) error {
	if err := r.erase(NotesKey(d)); err != nil {
		return fmt.Errorf("repository: delete notes %s: %w", d, err)
	}
	r.cache.dropNotes(d)
	return nil
}

// LoadFutureNotes returns the undated bucket, with the same caching rules as
// LoadNotes.
func (r *Repository) LoadFutureNotes() []note.Note {
	if cached, ok := r.cache.futureNotes(); ok {
		return cached
	}
	notes, cacheable := r.readNotes(FutureNotesKey)
	if cacheable {
		r.cache.setFuture(notes)
	}
	return notes
}

// SaveFutureNotes persists the undated bucket.
func (r *Repository) SaveFutureNotes(notes []note.Note) error {
	notes, err := r.writeNotes(FutureNotesKey, notes)
	if err != nil {
		return err
	}
	r.cache.setFuture(notes)
	return nil
}

// LoadJournal returns every journal entry, newest first as stored.
func (r *Repository) LoadJournal() []note.JournalEntry {
	if cached, ok := r.cache.journalEntries(); ok {
		return cached
	}
	data, err := r.store.Read(JournalKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		entries := make([]note.JournalEntry, 0)
		r.cache.setJournal(entries)
		return entries
	case err != nil:
		r.log.Warn("reading journal failed", "key", JournalKey, "err", err)
		return make([]note.JournalEntry, 0)
	}
	entries, err := decodeJournal(data)
	if err != nil {
		r.log.Warn("discarding malformed bucket", "key", JournalKey, "err", err)
	}
	r.cache.setJournal(entries)
	return entries
}

// SaveJournal persists the journal bucket.
func (r *Repository) SaveJournal(entries []note.JournalEntry) error {
	if entries == nil {
		entries = make([]note.JournalEntry, 0)
	}
	if err := checkJournalIDs(entries); err != nil {
		return err
	}
	data, err := encodeJournal(entries)
	if err != nil {
		return fmt.Errorf("repository: encode journal: %w", err)
	}
	if err := r.put(JournalKey, data); err != nil {
		return fmt.Errorf("repository: save journal: %w", err)
	}
	r.cache.setJournal(entries)
	return nil
}

// InvalidateCache forgets the cached bucket for d.
func (r *Repository) InvalidateCache(d timeutil.Date) { r.cache.dropNotes(d) }

// InvalidateFutureNotesCache forgets the cached undated bucket.
func (r *Repository) InvalidateFutureNotesCache() { r.cache.dropFuture() }

// InvalidateJournalCache forgets the cached journal.
func (r *Repository) InvalidateJournalCache() { r.cache.dropJournal() }

// ClearCache forgets everything; the next reads go to the store.
func (r *Repository) ClearCache() { r.cache.Clear() }

// InvalidateKey forgets whatever bucket key maps to. Unknown keys clear the
// whole cache.
func (r *Repository) InvalidateKey(key string) {
	kind, d, ok := ParseKey(key)
	if !ok {
		r.ClearCache()
		return
	}
	switch kind {
	case KindDateNotes:
		r.InvalidateCache(d)
	case KindFutureNotes:
		r.InvalidateFutureNotesCache()
	case KindJournal:
		r.InvalidateJournalCache()
	}
}

// Export builds a Document of the non-empty buckets between today-window and
// today+window plus the future and journal buckets.
func (r *Repository) Export() Document {
	var doc Document
	today := r.Today()
	for i := -r.exportWindow; i <= r.exportWindow; i++ {
		d := today.AddDays(i)
		if notes := r.LoadNotes(d); len(notes) > 0 {
			doc.Buckets = append(doc.Buckets, Bucket{Kind: KindDateNotes, Date: d, Notes: notes})
		}
	}
	r.appendFixedBuckets(&doc)
	return doc
}

// ExportAll renders Export as indented JSON.
func (r *Repository) ExportAll() ([]byte, error) {
	return marshalDocument(r.Export())
}

// ExportStored renders every bucket present in the store, regardless of date.
func (r *Repository) ExportStored(ctx context.Context) ([]byte, error) {
	var doc Document
	for _, key := range r.store.Keys(ctx) {
		kind, d, ok := ParseKey(key)
		if !ok || kind != KindDateNotes {
			continue
		}
		if notes := r.LoadNotes(d); len(notes) > 0 {
			doc.Buckets = append(doc.Buckets, Bucket{Kind: KindDateNotes, Date: d, Notes: notes})
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.appendFixedBuckets(&doc)
	return marshalDocument(doc)
}

func (r *Repository) appendFixedBuckets(doc *Document) {
	if future := r.LoadFutureNotes(); len(future) > 0 {
		doc.Buckets = append(doc.Buckets, Bucket{Kind: KindFutureNotes, Notes: future})
	}
	if journal := r.LoadJournal(); len(journal) > 0 {
		doc.Buckets = append(doc.Buckets, Bucket{Kind: KindJournal, Journal: journal})
	}
}

func marshalDocument(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("repository: export: %w", err)
	}
	return data, nil
}

// ImportAll replaces every bucket named in blob. The whole document is parsed
// and validated before anything is written, so a malformed backup leaves the
// store untouched. The cache is cleared afterwards.
func (r *Repository) ImportAll(blob []byte) error {
	doc, err := ParseDocument(blob)
	if err != nil {
		return err
	}
	for _, key := range doc.Skipped {
		r.log.Info("skipping unknown backup key", "key", key)
	}
	return r.Import(doc)
}

// Import writes a parsed document bucket by bucket.
func (r *Repository) Import(doc Document) error {
	defer r.ClearCache()
	for _, b := range doc.Buckets {
		var (
			data []byte
			err  error
		)
		switch b.Kind {
		case KindJournal:
			data, err = encodeJournal(b.Journal)
		case KindDateNotes, KindFutureNotes:
			data, err = encodeNotes(b.Notes)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("repository: import %s: %w", b.Key(), err)
		}
		if err := r.put(b.Key(), data); err != nil {
			return fmt.Errorf("repository: import %s: %w", b.Key(), err)
		}
	}
	r.log.Debug("imported backup", "buckets", len(doc.Buckets), "skipped", len(doc.Skipped))
	return nil
}

// ImportAllData is ImportAll reduced to success or failure; failures are
// logged.
func (r *Repository) ImportAllData(blob []byte) bool {
	if err := r.ImportAll(blob); err != nil {
		r.log.Warn("import failed", "err", err)
		return false
	}
	return true
}

// readNotes loads a notes bucket from the store. The bool reports whether the
// result reflects the store and may be cached.
func (r *Repository) readNotes(key string) ([]note.Note, bool) {
	data, err := r.store.Read(key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return make([]note.Note, 0), true
	case err != nil:
		r.log.Warn("reading bucket failed", "key", key, "err", err)
		return make([]note.Note, 0), false
	}
	notes, err := decodeNotes(data)
	if err != nil {
		r.log.Warn("discarding malformed bucket", "key", key, "err", err)
	}
	return notes, true
}

func (r *Repository) writeNotes(key string, notes []note.Note) ([]note.Note, error) {
	if notes == nil {
		notes = make([]note.Note, 0)
	}
	if err := checkNoteIDs(notes); err != nil {
		return nil, err
	}
	data, err := encodeNotes(notes)
	if err != nil {
		return nil, fmt.Errorf("repository: encode %s: %w", key, err)
	}
	if err := r.put(key, data); err != nil {
		return nil, fmt.Errorf("repository: save %s: %w", key, err)
	}
	return notes, nil
}

func (r *Repository) put(key string, data []byte) error {
	if err := r.store.Write(key, data); err != nil {
		return err
	}
	r.mu.Lock()
	r.written[key] = data
	r.mu.Unlock()
	return nil
}

func (r *Repository) erase(key string) error {
	if err := r.store.Erase(key); err != nil {
		return err
	}
	r.mu.Lock()
	r.written[key] = nil
	r.mu.Unlock()
	return nil
}

// OwnWrite reports whether the store still holds exactly what this
// repository last wrote under key, so a change event for key carries nothing
// new.
func (r *Repository) OwnWrite(key string) bool {
	r.mu.Lock()
	want, ok := r.written[key]
	r.mu.Unlock()
	if !ok {
		return false
	}
	if want == nil {
		return !r.store.Has(key)
	}
	got, err := r.store.Read(key)
	return err == nil && bytes.Equal(got, want)
}
