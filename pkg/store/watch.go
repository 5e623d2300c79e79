package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventKeyChanged means the value under Key was written or erased.
	EventKeyChanged EventType = iota

	// EventInvalidated is a change that cannot be pinned to one key. Callers
	// re-read everything they hold.
	EventInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Key  string
}

const coalesceDelay = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. The channel is closed
// when ctx is done or fsnotify gives up. Events are dropped, never queued,
// when the reader falls behind.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	w := &dirWatcher{fs: fw, watched: map[string]bool{}, out: make(chan Event, 64)}
	if err := w.addTree(p.basePath); err != nil {
		_ = fw.Close()
		return nil, err
	}
	go w.run(ctx)
	return w.out, nil
}

// dirWatcher follows the diskv tree, which grows a directory per month.
type dirWatcher struct {
	fs      *fsnotify.Watcher
	watched map[string]bool
	out     chan Event
}

func (w *dirWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil
		case err != nil:
			return fmt.Errorf("store: enumerate directories: %w", err)
		case !d.IsDir() || w.watched[path]:
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("store: watch %s: %w", path, err)
		}
		w.watched[path] = true
		return nil
	})
}

func (w *dirWatcher) emit(ev Event) {
	select {
	case w.out <- ev:
	default:
	}
}

func (w *dirWatcher) run(ctx context.Context) {
	batch := newCoalescer(coalesceDelay, w.emit)
	defer close(w.out)
	defer w.fs.Close()
	defer batch.close()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			batch.add(Event{Type: EventInvalidated})
		case fe, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev, ok := w.translate(fe); ok {
				batch.add(ev)
			}
		}
	}
}

// translate maps a filesystem event onto a store event. A new directory is
// added to the watch set and reported as an invalidation, since files may
// have landed in it before it was watched.
func (w *dirWatcher) translate(fe fsnotify.Event) (Event, bool) {
	if fe.Op&fsnotify.Create == fsnotify.Create {
		dir := filepath.Clean(fe.Name)
		if err := w.addTree(dir); err == nil && w.watched[dir] {
			return Event{Type: EventInvalidated}, true
		}
	}
	key := keyForPath(fe.Name)
	if key == "" {
		return Event{}, false
	}
	return Event{Type: EventKeyChanged, Key: key}, true
}

// keyForPath maps a diskv file path back to its key. Files are named after
// their key; hidden and temp files are ignored.
func keyForPath(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") {
		return ""
	}
	return name
}

// coalescer batches events for delay after the first one, then emits each
// changed key once, or a single invalidation if one was seen.
type coalescer struct {
	delay time.Duration
	emit  func(Event)

	mu          sync.Mutex
	keys        map[string]struct{}
	invalidated bool
	timer       *time.Timer
	closed      bool
}

func newCoalescer(delay time.Duration, emit func(Event)) *coalescer {
	return &coalescer{delay: delay, emit: emit, keys: map[string]struct{}{}}
}

func (c *coalescer) add(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if ev.Type == EventInvalidated {
		c.invalidated = true
	} else {
		c.keys[ev.Key] = struct{}{}
	}
	if c.timer == nil {
		c.timer = time.AfterFunc(c.delay, c.fire)
	}
}

// fire holds the lock while emitting; emit must not block.
func (c *coalescer) fire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys, invalidated := c.keys, c.invalidated
	c.keys, c.invalidated, c.timer = map[string]struct{}{}, false, nil
	if c.closed {
		return
	}
	if invalidated {
		c.emit(Event{Type: EventInvalidated})
		return
	}
	for k := range keys {
		c.emit(Event{Type: EventKeyChanged, Key: k})
	}
}

func (c *coalescer) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
