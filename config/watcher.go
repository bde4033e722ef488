package config

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/winterop/winrtgen/errors"
	"github.com/winterop/winrtgen/logger"
)

// Watcher watches the metadata files a generation run consumed and
// triggers regeneration callbacks when any of them change. It backs the
// CLI's --watch mode; one-shot builds register the same paths with the
// host build system instead.
type Watcher struct {
	watcher        *fsnotify.Watcher
	callbacks      []func()
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// NewWatcher creates a watcher over the given file paths.
func NewWatcher(paths []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	for _, path := range paths {
		if err := fsw.Add(path); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", path)
		}
	}

	return &Watcher{
		watcher:        fsw,
		debouncePeriod: 500 * time.Millisecond, // Debounce rapid file changes
	}, nil
}

// OnChange registers a callback for debounced change events.
func (w *Watcher) OnChange(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
				logger.Infow("Metadata change detected",
					"file", event.Name,
					"op", event.Op.String())
				w.scheduleFire()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Metadata watcher error", "error", err)
		}
	}
}

// scheduleFire debounces rapid file changes before firing callbacks.
func (w *Watcher) scheduleFire() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.fire)
}

func (w *Watcher) fire() {
	w.mu.RLock()
	callbacks := make([]func(), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		callback()
	}
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
