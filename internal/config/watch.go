package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce coalesces the bursts of events editors produce on save.
const WatchDebounce = 100 * time.Millisecond

// Watch reloads path with LoadFile whenever it is written or re-created
// and hands the result to fn. The parent directory is watched so atomic
// renames are seen. Watch returns once the watcher is running; it stops
// when ctx is cancelled.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	go runWatch(ctx, w, abs, fn)
	return nil
}

func runWatch(ctx context.Context, w *fsnotify.Watcher, path string, fn func(*Config, error)) {
	defer func() { _ = w.Close() }()

	timer := time.NewTimer(WatchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(WatchDebounce)
		case <-timer.C:
			fn(LoadFile(path))
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			fn(nil, fmt.Errorf("watch %s: %w", path, err))
		}
	}
}
