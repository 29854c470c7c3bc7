package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long the watcher waits for further writes before
// reloading. Editors typically emit several events per save.
const defaultDebounce = 500 * time.Millisecond

// Watcher reloads a file-backed Store when its catalog file changes. It
// watches the containing directory (not the file itself) so atomic
// rename-into-place saves are seen.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	// OnReload, when set, observes every reload outcome (nil = success).
	OnReload func(err error)
}

// NewWatcher creates a watcher for the store's backing catalog file.
func NewWatcher(store *Store, logger *slog.Logger) (*Watcher, error) {
	if store.path == "" {
		return nil, fmt.Errorf("catalog watcher requires a file-backed store")
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(store.path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch catalog directory: %w", err)
	}

	return &Watcher{
		store:    store,
		watcher:  fsw,
		logger:   logger,
		debounce: defaultDebounce,
	}, nil
}

// Start begins watching until ctx is cancelled. It returns immediately; the
// watch loop runs in a goroutine.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
	w.logger.Info("Watching catalog file", slog.String("path", w.store.path))
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	target := filepath.Clean(w.store.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Debounce: restart the timer on every event burst.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			err := w.store.Reload()
			if err == nil {
				w.logger.Info("Catalog reloaded",
					slog.String("path", w.store.path),
					slog.String("version", w.store.Current().Version()))
			}
			if w.OnReload != nil {
				w.OnReload(err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Catalog watch error", slog.String("error", err.Error()))
		}
	}
}
