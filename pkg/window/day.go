package window

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/timeutil"
)

const (
	previewNotes = 3
	previewWidth = 50
)

// Day is the read model for one calendar date in the window.
type Day struct {
	Date         timeutil.Date
	WeekdayLabel string
	Notes        []note.Note
}

// NewDay builds a Day for d holding notes.
func NewDay(d timeutil.Date, notes []note.Note) Day {
	return Day{Date: d, WeekdayLabel: d.Weekday().String(), Notes: notes}
}

// Equal compares date and notes.
func (d Day) Equal(o Day) bool {
	return d.Date == o.Date && note.Equal(d.Notes, o.Notes)
}

// DisplayTitle renders the day as "Monday, 3 June".
func (d Day) DisplayTitle() string {
	return fmt.Sprintf("%s, %d %s", d.Date.Weekday(), d.Date.Day(), d.Date.Month())
}

// NotesPreview lists up to three non-blank notes as bullets.
func (d Day) NotesPreview() string {
	var visible []string
	for _, n := range d.Notes {
		if !n.IsBlank() {
			visible = append(visible, strings.TrimSpace(n.Text))
		}
	}
	if len(visible) == 0 {
		return "No tasks"
	}

	lines := make([]string, 0, previewNotes+1)
	for i, text := range visible {
		if i == previewNotes {
			lines = append(lines, "...")
			break
		}
		if ansi.PrintableRuneWidth(text) > previewWidth {
			text = truncate.StringWithTail(text, previewWidth, "...")
		}
		lines = append(lines, "• "+text)
	}
	return strings.Join(lines, "\n")
}

// Unchecked counts the incomplete notes.
func (d Day) Unchecked() int {
	count := 0
	for _, n := range d.Notes {
		if !n.IsCompleted {
			count++
		}
	}
	return count
}
