// Package window maintains the contiguous strip of days the calendar views
// scroll through.
package window

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/timeutil"
)

const (
	// DefaultSize is 50 days either side of the pivot.
	DefaultSize = 101
	// DefaultExpandStep is how many days a scroll-triggered expansion adds.
	DefaultExpandStep = 20
	// DefaultThreshold is how close to an edge the viewport may get before
	// the window grows.
	DefaultThreshold = 10

	// resumeDrift is how far the pivot may lag today before Resume rebuilds
	// the window around today.
	resumeDrift = 3
)

// NotesLoader is the part of the repository the window reads through.
type NotesLoader interface {
	LoadNotes(d timeutil.Date) []note.Note
	InvalidateCache(d timeutil.Date)
}

// Window is an ordered, gap-free run of days around a pivot. It only grows;
// days are never evicted.
type Window struct {
	loader    NotesLoader
	size      int
	step      int
	threshold int
	clock     timeutil.Clock
	log       *slog.Logger

	expanding atomic.Bool

	mu     sync.RWMutex
	days   []Day
	center int
	pivot  timeutil.Date
}

// Option configures a Window.
type Option func(*Window)

// WithSize sets how many days Initialize builds.
func WithSize(n int) Option {
	return func(w *Window) {
		if n > 0 {
			w.size = n
		}
	}
}

// WithExpansion sets the step and edge threshold used by Scrolled.
func WithExpansion(step, threshold int) Option {
	return func(w *Window) {
		if step > 0 {
			w.step = step
		}
		if threshold >= 0 {
			w.threshold = threshold
		}
	}
}

func WithClock(c timeutil.Clock) Option {
	return func(w *Window) { w.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Window) {
		if l != nil {
			w.log = l
		}
	}
}

// New returns an empty window; call Initialize before use.
func New(loader NotesLoader, opts ...Option) *Window {
	w := &Window{
		loader:    loader,
		size:      DefaultSize,
		step:      DefaultExpandStep,
		threshold: DefaultThreshold,
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Initialize replaces the window with size days centered on pivot.
func (w *Window) Initialize(pivot timeutil.Date) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.initializeLocked(pivot)
}

func (w *Window) initializeLocked(pivot timeutil.Date) {
	before := w.size / 2
	start := pivot.AddDays(-before)
	days := make([]Day, 0, w.size)
	for i := 0; i < w.size; i++ {
		days = append(days, w.load(start.AddDays(i)))
	}
	w.days = days
	w.center = before
	w.pivot = pivot
	w.log.Debug("window initialized", "pivot", pivot, "first", days[0].Date, "last", days[len(days)-1].Date)
}

// ExpandPast prepends count days before the first one and shifts the center
// so the same day stays centered. It reports false without changing anything
// when count is not positive, the window is empty, or another expansion is
// running.
func (w *Window) ExpandPast(count int) bool {
	return w.expand(count, func() {
		first := w.days[0].Date
		grown := make([]Day, 0, count+len(w.days))
		for i := count; i >= 1; i-- {
			grown = append(grown, w.load(first.AddDays(-i)))
		}
		w.days = append(grown, w.days...)
		w.center += count
	})
}

// ExpandFuture appends count days after the last one.
func (w *Window) ExpandFuture(count int) bool {
	return w.expand(count, func() {
		last := w.days[len(w.days)-1].Date
		for i := 1; i <= count; i++ {
			w.days = append(w.days, w.load(last.AddDays(i)))
		}
	})
}

func (w *Window) expand(count int, grow func()) bool {
	if count <= 0 {
		return false
	}
	if !w.expanding.CompareAndSwap(false, true) {
		w.log.Debug("expansion already in flight")
		return false
	}
	defer w.expanding.Store(false)

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.days) == 0 {
		return false
	}
	grow()
	return true
}

// ShouldExpand reports which edges of the window the visible range
// [first, last] has come within threshold of.
func (w *Window) ShouldExpand(first, last, threshold int) (past, future bool) {
	n := w.Len()
	if n == 0 {
		return false, false
	}
	return first <= threshold, last >= n-1-threshold
}

// Scrolled grows the window by the configured step on whichever edge the
// visible range is near. It returns how many days were prepended so callers
// can shift their own indices.
func (w *Window) Scrolled(first, last int) (prepended int) {
	past, future := w.ShouldExpand(first, last, w.threshold)
	if past && w.ExpandPast(w.step) {
		prepended = w.step
	}
	if future {
		w.ExpandFuture(w.step)
	}
	return prepended
}

// Recenter moves the center to target, rebuilding the window around it when
// target is outside the current range.
func (w *Window) Recenter(target timeutil.Date) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := w.indexLocked(target); i >= 0 {
		w.center = i
		w.pivot = target
		return
	}
	w.initializeLocked(target)
}

// RefreshAll reloads every day from the store.
func (w *Window) RefreshAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, d := range w.days {
		w.loader.InvalidateCache(d.Date)
		w.days[i] = w.load(d.Date)
	}
}

// Resume resyncs the window when a view becomes active again. If today has
// drifted more than a few days from the pivot the window is rebuilt around
// today, otherwise every day is refreshed. It reports whether a rebuild
// happened.
func (w *Window) Resume() bool {
	today := w.clock.Today()
	w.mu.Lock()
	if len(w.days) == 0 || abs(w.pivot.DaysUntil(today)) > resumeDrift {
		w.initializeLocked(today)
		w.mu.Unlock()
		return true
	}
	w.mu.Unlock()
	w.RefreshAll()
	return false
}

// Days returns a copy of the current sequence.
func (w *Window) Days() []Day {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Day, len(w.days))
	copy(out, w.days)
	return out
}

// Day returns the day at index i.
func (w *Window) Day(i int) (Day, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if i < 0 || i >= len(w.days) {
		return Day{}, false
	}
	return w.days[i], true
}

func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.days)
}

func (w *Window) Center() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.center
}

// CenterDay returns the day at the center index.
func (w *Window) CenterDay() (Day, bool) {
	return w.Day(w.Center())
}

func (w *Window) Pivot() timeutil.Date {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pivot
}

// IndexOf returns the index of d or -1.
func (w *Window) IndexOf(d timeutil.Date) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.indexLocked(d)
}

// Today returns today's day when it is inside the window.
func (w *Window) Today() (Day, bool) {
	return w.Day(w.IndexOf(w.clock.Today()))
}

// indexLocked relies on the window being gap-free.
func (w *Window) indexLocked(d timeutil.Date) int {
	if len(w.days) == 0 {
		return -1
	}
	i := w.days[0].Date.DaysUntil(d)
	if i < 0 || i >= len(w.days) {
		return -1
	}
	return i
}

func (w *Window) load(d timeutil.Date) Day {
	return NewDay(d, w.loader.LoadNotes(d))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
