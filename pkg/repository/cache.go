package repository

import (
	"sync"
	"sync/atomic"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/timeutil"
)

// Cache holds decoded buckets for a Repository. Every bucket is either absent
// or holds exactly the last value read from or written to the store.
type Cache struct {
	mu      sync.RWMutex
	dates   map[timeutil.Date][]note.Note
	future  []note.Note
	journal []note.JournalEntry
	hasFut  bool
	hasJrnl bool

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats is a point-in-time view of a Cache.
type CacheStats struct {
	Dates   int
	Future  bool
	Journal bool
	Hits    uint64
	Misses  uint64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{dates: make(map[timeutil.Date][]note.Note)}
}

func (c *Cache) notes(d timeutil.Date) ([]note.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.dates[d]
	c.count(ok)
	return n, ok
}

func (c *Cache) setNotes(d timeutil.Date, notes []note.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dates[d] = notes
}

func (c *Cache) dropNotes(d timeutil.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.dates, d)
}

func (c *Cache) futureNotes() ([]note.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.count(c.hasFut)
	return c.future, c.hasFut
}

func (c *Cache) setFuture(notes []note.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.future, c.hasFut = notes, true
}

func (c *Cache) dropFuture() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.future, c.hasFut = nil, false
}

func (c *Cache) journalEntries() ([]note.JournalEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.count(c.hasJrnl)
	return c.journal, c.hasJrnl
}

func (c *Cache) setJournal(entries []note.JournalEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.journal, c.hasJrnl = entries, true
}

func (c *Cache) dropJournal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.journal, c.hasJrnl = nil, false
}

// Clear drops every bucket.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dates = make(map[timeutil.Date][]note.Note)
	c.future, c.hasFut = nil, false
	c.journal, c.hasJrnl = nil, false
}

// Stats reports what is currently cached.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		Dates:   len(c.dates),
		Future:  c.hasFut,
		Journal: c.hasJrnl,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

func (c *Cache) count(hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
}
