package note

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a free-form journal page. The first line of Content is its
// title.
type JournalEntry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// NewJournalEntry returns an empty entry stamped with now.
func NewJournalEntry(now time.Time) JournalEntry {
	return JournalEntry{
		ID:        uuid.NewString(),
		CreatedAt: Timestamp{Time: now},
		UpdatedAt: Timestamp{Time: now},
	}
}

// Title is the trimmed first line of the content.
func (e JournalEntry) Title() string {
	first, _, _ := strings.Cut(e.Content, "\n")
	return strings.TrimSpace(first)
}

// Preview joins every line after the title with single spaces.
func (e JournalEntry) Preview() string {
	_, rest, found := strings.Cut(e.Content, "\n")
	if !found {
		return ""
	}
	return strings.TrimSpace(strings.Join(strings.Split(rest, "\n"), " "))
}

// IsBlank reports whether the entry has no visible content.
func (e JournalEntry) IsBlank() bool {
	return strings.TrimSpace(e.Content) == ""
}

// CloneJournal copies entries. A nil input yields an empty, non-nil slice.
func CloneJournal(entries []JournalEntry) []JournalEntry {
	out := make([]JournalEntry, len(entries))
	copy(out, entries)
	return out
}
