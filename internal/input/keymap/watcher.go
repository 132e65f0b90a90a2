package keymap

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports layout-description file changes so the pipeline can
// recompile. Events are debounced: editors often write a file several
// times in one save.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func(path string)
	debounce time.Duration

	mu      sync.Mutex
	watched map[string]bool
	timers  map[string]*time.Timer
	closed  bool

	done chan struct{}
}

// defaultDebounce batches the write bursts editors produce on save.
const defaultDebounce = 100 * time.Millisecond

// NewWatcher creates a watcher that invokes onChange with the path of
// every changed watched file. The callback runs on the watcher's own
// goroutine; callers forward it onto their event loop.
func NewWatcher(onChange func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating layout watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		onChange: onChange,
		debounce: defaultDebounce,
		watched:  make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add watches one file. The containing directory is registered so
// rename-and-replace saves still produce events.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("watching %s: watcher is closed", path)
	}
	if w.watched[abs] {
		return nil
	}
	if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	w.watched[abs] = true
	return nil
}

// Errors surfaces watcher failures. They are log-and-continue for the
// caller; a broken watcher only loses live reload.
func (w *Watcher) Errors() <-chan error {
	return w.fsw.Errors
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			w.mu.Lock()
			if w.closed || !w.watched[abs] {
				w.mu.Unlock()
				continue
			}
			if t, ok := w.timers[abs]; ok {
				t.Stop()
			}
			w.timers[abs] = time.AfterFunc(w.debounce, func() {
				w.fire(abs)
			})
			w.mu.Unlock()
		}
	}
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	delete(w.timers, path)
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}
	w.onChange(path)
}

// Close stops watching. Pending debounce timers are cancelled; no
// callback fires after Close returns.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = map[string]*time.Timer{}
	w.mu.Unlock()

	close(w.done)
	return w.fsw.Close()
}
