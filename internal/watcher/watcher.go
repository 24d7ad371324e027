// Package watcher reports changes to individual files, debounced.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay coalesces the burst of events an editor save produces.
const DefaultDelay = 100 * time.Millisecond

// Watcher watches files through their parent directories, so files replaced
// by rename on save keep being watched. The callback runs once per file per
// burst of changes, on its own goroutine.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool
	callback func(path string)
	delay    time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a Watcher for the given files. The files need not exist yet
// but their directories must.
func New(files []string, callback func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool, len(files)),
		callback: callback,
		delay:    DefaultDelay,
		timers:   make(map[string]*time.Timer),
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
		dirs[dir] = true
	}
	return w, nil
}

// SetDelay changes the debounce window. Call before Run.
func (w *Watcher) SetDelay(d time.Duration) {
	w.delay = d
}

// Run blocks until ctx is cancelled. Errors from the underlying watcher go
// to errFn when it is non-nil.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	defer w.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			w.debounce(name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.delay, func() { w.callback(path) })
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, t := range w.timers {
		t.Stop()
	}
}
