package catalog

import (
	"os"
	"time"
)

// Watcher polls the catalog file's modification time and invalidates the
// loader's cache when it changes. Polling keeps it standard-library only and
// tolerant of the file appearing or disappearing at runtime.
type Watcher struct {
	loader   *Loader
	interval time.Duration
	onReload func(path string)
	stopCh   chan struct{}
	last     time.Time
	known    bool
}

// NewWatcher creates a watcher for the loader's catalog file. onReload is
// optional and fires after each invalidation (used for logging).
func NewWatcher(l *Loader, interval time.Duration, onReload func(string)) *Watcher {
	return &Watcher{
		loader:   l,
		interval: interval,
		onReload: onReload,
		stopCh:   make(chan struct{}),
	}
}

// Start begins polling in a goroutine. It is a no-op when the loader has no
// file layer configured.
func (w *Watcher) Start() {
	path := w.loader.Path()
	if path == "" {
		return
	}
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		w.scan(path, true)
		for {
			select {
			case <-ticker.C:
				w.scan(path, false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

// scan compares the file's mtime with the last observed one. The first
// observation only primes the cache; prime suppresses the callback so the
// initial state never counts as a change.
func (w *Watcher) scan(path string, prime bool) {
	fi, err := os.Stat(path)
	if err != nil {
		// file removed: treat as a change so stale entries drop out
		if w.known && !prime {
			w.known = false
			w.fire(path)
		}
		return
	}
	mt := fi.ModTime()
	if !w.known {
		w.known = true
		w.last = mt
		if !prime {
			w.fire(path)
		}
		return
	}
	if mt.After(w.last) {
		w.last = mt
		if !prime {
			w.fire(path)
		}
	}
}

func (w *Watcher) fire(path string) {
	w.loader.Invalidate()
	if w.onReload != nil {
		w.onReload(path)
	}
}
