// Package content provides filesystem-level helpers around content
// sources, currently the change watcher that drives re-indexing.
package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/s-hiraoku/blogsearch/internal/logger"
)

// debounceWindow batches rapid event bursts (editors write several
// events per save) into a single reload.
const debounceWindow = 500 * time.Millisecond

// Watcher observes a content directory and invokes a callback when
// markdown posts change, so the caller can re-index.
type Watcher struct {
	dir string
	fw  *fsnotify.Watcher
}

// NewWatcher creates a watcher over the given content directory and
// every directory below it, matching the loader's recursive walk.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{dir: dir, fw: fw}, nil
}

// Watch blocks until ctx is cancelled, invoking onChange after each
// debounced burst of relevant filesystem events.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					// New subdirectory: watch it so posts created
					// inside trigger reloads too.
					if err := w.fw.Add(event.Name); err != nil {
						logger.Warn("Watching %s failed: %v", event.Name, err)
					}
					continue
				}
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("Content change: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			onChange()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// relevant filters for operations on markdown files that change the
// corpus. Chmod-only events are noise.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".md", ".mdx", ".markdown":
		return true
	}
	return false
}
