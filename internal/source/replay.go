package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dshills/keyloom/internal/input"
)

// Replay feeds transitions from a JSON-lines trace: one transition
// object per line, blank lines and #-comment lines skipped. The first
// malformed line stops the stream; Err reports it once Transitions
// has closed.
type Replay struct {
	name string
	r    io.ReadCloser
	ch   chan input.Transition
	done chan struct{}
	once sync.Once

	mu  sync.Mutex
	err error
}

// OpenReplay opens the trace file at path.
func OpenReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening replay: %w", err)
	}
	return NewReplay(f, path), nil
}

// NewReplay streams transitions from r. name labels parse errors.
func NewReplay(r io.ReadCloser, name string) *Replay {
	rp := &Replay{
		name: name,
		r:    r,
		ch:   make(chan input.Transition, 16),
		done: make(chan struct{}),
	}
	go rp.run()
	return rp
}

func (r *Replay) run() {
	defer close(r.ch)

	sc := bufio.NewScanner(r.r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var t input.Transition
		if err := json.Unmarshal([]byte(text), &t); err != nil {
			r.setErr(fmt.Errorf("%s:%d: %w", r.name, line, err))
			return
		}
		select {
		case r.ch <- t:
		case <-r.done:
			return
		}
	}
	if err := sc.Err(); err != nil {
		// A scan error after Close is the closed file, not the trace.
		select {
		case <-r.done:
		default:
			r.setErr(fmt.Errorf("reading %s: %w", r.name, err))
		}
	}
}

// Transitions returns the trace stream. The channel closes at end of
// trace, on the first malformed line, or after Close.
func (r *Replay) Transitions() <-chan input.Transition {
	return r.ch
}

// Err reports why the stream stopped early. It is nil for a clean end
// of trace and meaningful only after Transitions has closed.
func (r *Replay) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close stops the stream and releases the underlying reader.
func (r *Replay) Close() error {
	var err error
	r.once.Do(func() {
		close(r.done)
		err = r.r.Close()
	})
	return err
}

func (r *Replay) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.err = err
	}
}
