// Package watch re-runs validation whenever a watched graph file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is invoked after the debounce period once one or more watched
// files have changed.
type Handler func()

// Watcher debounces filesystem events on a fixed set of files and invokes
// a handler when they settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	handler  Handler
	log      *slog.Logger
}

// New builds a watcher over the given paths. A zero debounce defaults to
// half a second.
func New(paths []string, debounce time.Duration, logger *slog.Logger, handler Handler) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	for _, path := range paths {
		if err := fsw.Add(path); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}

	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		handler:  handler,
		log:      logger,
	}, nil
}

// Run blocks until the context is cancelled, invoking the handler after
// each settled burst of write events.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.log.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

			// Some editors replace the file on save, dropping the watch.
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if err := w.fsw.Add(event.Name); err != nil {
					w.log.Warn("re-adding watched file failed", "path", event.Name, "error", err)
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case <-timer.C:
			pending = false
			w.handler()
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
