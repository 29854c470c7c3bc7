package catalog

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Store is the atomically swappable catalog handle shared by concurrent
// analyses. Readers take a snapshot with Current and keep using it for the
// whole analysis; Reload builds the replacement completely before swapping,
// so a reader never observes a partial mix of old and new rules. A failed
// reload leaves the active catalog in effect.
type Store struct {
	current atomic.Pointer[Catalog]
	logger  *slog.Logger

	// reloadMu serializes reloads; reads are lock-free.
	reloadMu sync.Mutex
	path     string
}

// NewStore creates a store seeded with the given catalog. A nil initial
// catalog seeds the built-in default.
func NewStore(initial *Catalog, logger *slog.Logger) *Store {
	if initial == nil {
		initial = Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{logger: logger}
	s.current.Store(initial)
	return s
}

// NewFileStore creates a store backed by a catalog file. The file is loaded
// eagerly; Reload re-reads the same path.
func NewFileStore(path string, logger *slog.Logger) (*Store, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := NewStore(c, logger)
	s.path = path
	return s, nil
}

// Current returns the active catalog snapshot. The returned catalog is
// immutable and remains valid after any number of subsequent reloads.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Swap installs a new catalog and returns the previous one.
func (s *Store) Swap(c *Catalog) *Catalog {
	old := s.current.Swap(c)
	s.logger.Info("Catalog swapped",
		slog.String("old_version", old.Version()),
		slog.String("new_version", c.Version()),
		slog.Int("rules", len(c.Rules())))
	return old
}

// Reload re-reads the backing file and swaps the result in. On any load or
// validation error the active catalog is left untouched (fail-closed) and the
// error is returned.
func (s *Store) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.path == "" {
		return fmt.Errorf("catalog store has no backing file")
	}

	c, err := Load(s.path)
	if err != nil {
		s.logger.Warn("Catalog reload failed, keeping active catalog",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return err
	}

	s.Swap(c)
	return nil
}
