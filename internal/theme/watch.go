package theme

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/san-kum/prism/internal/logging"
)

// WatchDebounce is how long Watch waits after the last write before
// reloading.
var WatchDebounce = 150 * time.Millisecond

// Watch reloads file whenever it changes on disk and calls fn with the
// result. The parent directory is watched so editors that replace the
// file by rename are handled. Watch blocks until ctx is done.
func Watch(ctx context.Context, file string, fn func([]Definition, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("theme: watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("theme: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("theme: watch %s: %w", filepath.Dir(abs), err)
	}
	logging.Logger().Debug("watching theme file", "file", abs)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(WatchDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Logger().Warn("theme watcher error", "err", err)

		case <-timer.C:
			defs, err := ReadFile(abs)
			fn(defs, err)
		}
	}
}
