// Package watch reports changes to a pre-commit document on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/hookcheck/errors"
	"github.com/grovetools/hookcheck/logging"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls onChange after a document has been written. Bursts of
// events inside the debounce window collapse into one call, made once the
// burst settles.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	target   string // symlink target of path, if any
	debounce time.Duration
	onChange func(path string)

	mu     sync.Mutex
	timer  *time.Timer
	logger *logrus.Entry
}

// New watches the directory holding path. Editors commonly replace files by
// renaming over them, which a watch on the file itself would not survive.
func New(path string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeWatchFailed, "failed to resolve path").WithDetail("path", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeWatchFailed, "cannot watch missing file").WithDetail("path", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeWatchFailed, "failed to create file watcher")
	}

	logger := logging.NewLogger("watch")

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrap(err, errors.ErrCodeWatchFailed, "failed to watch directory").
			WithDetail("dir", filepath.Dir(abs))
	}

	// fsnotify doesn't follow symlinks, so watch the target's directory too
	var target string
	if resolved, err := filepath.EvalSymlinks(abs); err == nil && resolved != abs {
		target = resolved
		if filepath.Dir(resolved) != filepath.Dir(abs) {
			if err := watcher.Add(filepath.Dir(resolved)); err != nil {
				logger.WithError(err).Warnf("Failed to watch symlink target dir %s", filepath.Dir(resolved))
			} else {
				logger.Debugf("Watching symlink target directory: %s", filepath.Dir(resolved))
			}
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:  watcher,
		path:     abs,
		target:   target,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Start processes events until the context is cancelled or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			if !w.concerns(event.Name) {
				continue
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				w.schedule()
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.logger.Warnf("Document %s was removed; waiting for it to reappear", filepath.Base(w.path))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.stopTimer()
			w.watcher.Close()
			return
		}
	}
}

func (w *Watcher) concerns(name string) bool {
	name = filepath.Clean(name)
	return name == w.path || (w.target != "" && name == w.target)
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.logger.Debugf("Debounced: %s", filepath.Base(w.path))
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.logger.Infof("Document changed: %s", filepath.Base(w.path))
		if w.onChange != nil {
			w.onChange(w.path)
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}
