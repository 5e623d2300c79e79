// Package overdue collects incomplete notes from the days before today.
package overdue

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/timeutil"
)

// DefaultLookback is the number of past days scanned.
const DefaultLookback = 30

// Repository is the subset of the note repository the aggregator needs.
type Repository interface {
	LoadNotes(d timeutil.Date) []note.Note
	SaveNotes(d timeutil.Date, notes []note.Note) error
	InvalidateCache(d timeutil.Date)
}

// Aggregator keeps the current overdue view and writes edits back to the
// full date buckets.
type Aggregator struct {
	repo     Repository
	clock    timeutil.Clock
	lookback int
	log      *slog.Logger

	mu   sync.Mutex
	view []note.OverdueNote
}

type Option func(*Aggregator)

func WithClock(c timeutil.Clock) Option {
	return func(a *Aggregator) { a.clock = c }
}

// WithLookback sets the lookback Refresh uses.
func WithLookback(days int) Option {
	return func(a *Aggregator) {
		if days > 0 {
			a.lookback = days
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.log = l
		}
	}
}

func New(repo Repository, opts ...Option) *Aggregator {
	a := &Aggregator{repo: repo, lookback: DefaultLookback, log: slog.Default()}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Lookback returns the configured lookback in days.
func (a *Aggregator) Lookback() int { return a.lookback }

// Compute scans [today-lookback, today-1], re-reading every day from the
// store, and returns the incomplete notes oldest first. The result becomes
// the current view.
func (a *Aggregator) Compute(lookback int) []note.OverdueNote {
	today := a.clock.Today()
	out := make([]note.OverdueNote, 0)
	for i := lookback; i >= 1; i-- {
		d := today.AddDays(-i)
		a.repo.InvalidateCache(d)
		for _, n := range a.repo.LoadNotes(d) {
			if !n.IsCompleted {
				out = append(out, note.OverdueNote{Note: n, Date: d})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	a.mu.Lock()
	a.view = out
	a.mu.Unlock()
	return cloneView(out)
}

// Refresh recomputes the view with the configured lookback.
func (a *Aggregator) Refresh() []note.OverdueNote {
	return a.Compute(a.lookback)
}

// Notes returns a copy of the current view.
func (a *Aggregator) Notes() []note.OverdueNote {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneView(a.view)
}

// Find returns the overdue note with id from the current view.
func (a *Aggregator) Find(id string) (note.OverdueNote, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, o := range a.view {
		if o.ID() == id {
			return o, true
		}
	}
	return note.OverdueNote{}, false
}

// Update writes an edited overdue note back into its date bucket. The whole
// bucket is reloaded and saved so notes outside the view are preserved. The
// view then drops the note if it is now complete, or replaces it otherwise.
func (a *Aggregator) Update(o note.OverdueNote) error {
	all := note.Clone(a.repo.LoadNotes(o.Date))
	if i := note.IndexOf(all, o.ID()); i >= 0 {
		all[i] = o.Note
	} else {
		all = append(all, o.Note)
	}
	if err := a.repo.SaveNotes(o.Date, all); err != nil {
		return fmt.Errorf("overdue: update %s on %s: %w", o.ID(), o.Date, err)
	}
	a.repo.InvalidateCache(o.Date)

	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.indexLocked(o)
	switch {
	case i < 0:
		a.log.Warn("updated note not in overdue view", "id", o.ID(), "date", o.Date)
	case o.IsCompleted():
		a.view = append(a.view[:i], a.view[i+1:]...)
	default:
		a.view[i] = o
	}
	return nil
}

// Delete removes the note from its date bucket and from the view. A note that
// no longer exists is logged and ignored.
func (a *Aggregator) Delete(o note.OverdueNote) error {
	all := note.Clone(a.repo.LoadNotes(o.Date))
	if i := note.IndexOf(all, o.ID()); i >= 0 {
		all = append(all[:i], all[i+1:]...)
		if err := a.repo.SaveNotes(o.Date, all); err != nil {
			return fmt.Errorf("overdue: delete %s on %s: %w", o.ID(), o.Date, err)
		}
		a.repo.InvalidateCache(o.Date)
	} else {
		a.log.Warn("deleted note not found", "id", o.ID(), "date", o.Date)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if i := a.indexLocked(o); i >= 0 {
		a.view = append(a.view[:i], a.view[i+1:]...)
	}
	return nil
}

// Summary describes the view for the overdue info block.
func (a *Aggregator) Summary() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Summarize(a.view)
}

// Summarize describes a list of overdue notes.
func Summarize(notes []note.OverdueNote) string {
	if len(notes) == 0 {
		return "No overdue tasks"
	}
	open := 0
	for _, o := range notes {
		if !o.IsCompleted() {
			open++
		}
	}
	if open == 0 {
		return "All overdue tasks completed!"
	}
	return fmt.Sprintf("You have %d overdue tasks", open)
}

func (a *Aggregator) indexLocked(o note.OverdueNote) int {
	for i, v := range a.view {
		if v.ID() == o.ID() && v.Date == o.Date {
			return i
		}
	}
	return -1
}

func cloneView(in []note.OverdueNote) []note.OverdueNote {
	out := make([]note.OverdueNote, len(in))
	copy(out, in)
	return out
}
