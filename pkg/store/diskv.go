package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNotFound is returned by Read when the key has never been written or was
// erased.
var ErrNotFound = errors.New("store: key not found")

// Persistence is the durable key to value map noter keeps its buckets in.
// All calls are synchronous and single-key writes are atomic.
type Persistence interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Erase(key string) error
	Has(key string) bool
	Keys(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg *Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// The repository owns caching; a second cache here would hide
		// edits made to the files by another process.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Read(key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *persistence) Write(key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.d.Write(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Erase(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Has(key string) bool {
	return p.d.Has(key)
}

func (p *persistence) Keys(ctx context.Context) []string {
	all := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if strings.HasPrefix(key, ".") {
			continue
		}
		all = append(all, key)
	}
	sort.Strings(all)
	return all
}

const notesPrefix = "notes_"

// keyToPathTransform files per-date buckets by month so a long-lived store
// does not pile thousands of files into one directory:
//
//	notes_2024-06-01 -> notes/2024-06/notes_2024-06-01
//	future_notes     -> future_notes
func keyToPathTransform(key string) *diskv.PathKey {
	if strings.HasPrefix(key, notesPrefix) {
		date := strings.TrimPrefix(key, notesPrefix)
		if len(date) >= len("2006-01") {
			return &diskv.PathKey{
				Path:     []string{"notes", date[:len("2006-01")]},
				FileName: key,
			}
		}
	}
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}

func validKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return errors.New("store: key required")
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("store: invalid key %q", key)
	}
	return nil
}
