package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tandem/internal/logger"
)

const debounce = 200 * time.Millisecond

// Watcher follows a small, changing set of directories (the two panels'
// current paths) and reports which directory saw filesystem activity.
// Events are debounced per directory; consumers re-scan, so the event kind
// does not matter, only where it happened.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan string

	mu   sync.Mutex
	dirs map[string]bool
	last map[string]time.Time

	done chan struct{}
}

// New creates a watcher. Call Start to begin delivering events.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsw:    fsw,
		events: make(chan string, 16),
		dirs:   make(map[string]bool),
		last:   make(map[string]time.Time),
		done:   make(chan struct{}),
	}, nil
}

// Events delivers the paths of watched directories whose contents changed.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// SetDirs replaces the watch set. Directories that cannot be watched are
// skipped with a log entry; panel refresh degrades to manual for them.
func (w *Watcher) SetDirs(dirs ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	want := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		want[dir] = true
	}

	for dir := range w.dirs {
		if !want[dir] {
			w.fsw.Remove(dir)
			delete(w.dirs, dir)
			delete(w.last, dir)
		}
	}

	for dir := range want {
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			logger.WithField("dir", dir).Warnf("cannot watch directory: %v", err)
			continue
		}
		w.dirs[dir] = true
	}
}

// Start runs the delivery loop until Close.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if dir, ok := w.resolve(event.Name); ok {
				select {
				case w.events <- dir:
				default:
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// resolve maps an event path to the watched directory it belongs to and
// applies the per-directory debounce.
func (w *Watcher) resolve(name string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	dir := name
	if !w.dirs[dir] {
		dir = filepath.Dir(name)
		if !w.dirs[dir] {
			return "", false
		}
	}

	now := time.Now()
	if now.Sub(w.last[dir]) < debounce {
		return "", false
	}
	w.last[dir] = now
	return dir, true
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
