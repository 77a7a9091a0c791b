package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces bursts of write events from editors that save in
// multiple steps (truncate+write, rename-over).
const debounceDelay = 100 * time.Millisecond

// Watcher reloads a settings file when it changes on disk and notifies
// observers with the freshly loaded settings.
type Watcher struct {
	mu sync.Mutex

	path      string
	fsw       *fsnotify.Watcher
	observers []func(*Settings)
	closed    bool
	done      chan struct{}
}

// NewWatcher starts watching the given settings file. The file's directory
// is watched rather than the file itself so rename-over saves keep working.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path: abs,
		fsw:  fsw,
		done: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// OnReload registers an observer invoked with the reloaded settings.
// Observers run on the watcher goroutine.
func (w *Watcher) OnReload(fn func(*Settings)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, fn)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	return err
}

// loop consumes fsnotify events, debounces them, and fires reloads.
func (w *Watcher) loop() {
	defer close(w.done)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerCh = timer.C
			} else {
				// The timer may have fired with its value still pending;
				// drain it or the Reset delivers an immediate stale tick.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceDelay)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			w.reload()

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event may succeed.
		}
	}
}

// reload loads the file and notifies observers. Load failures are ignored;
// the previous settings stay in effect.
func (w *Watcher) reload() {
	s, err := Load(w.path)
	if err != nil {
		return
	}

	w.mu.Lock()
	observers := append([]func(*Settings){}, w.observers...)
	w.mu.Unlock()

	for _, fn := range observers {
		fn(s)
	}
}
