package input

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Tracer writes one line per resolution step when enabled. The gate
// is an atomic so the resolution path pays a single load per step
// while tracing is off, and so the gate can be flipped from outside
// the dispatcher thread.
type Tracer struct {
	mu      sync.Mutex
	w       io.Writer
	enabled atomic.Bool
}

// NewTracer creates a tracer writing to w. A nil writer leaves the
// tracer silent until SetWriter.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// SetWriter replaces the trace sink.
func (t *Tracer) SetWriter(w io.Writer) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.w = w
	t.mu.Unlock()
}

// SetEnabled turns step tracing on or off.
func (t *Tracer) SetEnabled(on bool) {
	if t == nil {
		return
	}
	t.enabled.Store(on)
}

// Enabled reports whether step lines are currently written.
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled.Load()
}

func (t *Tracer) step(format string, args ...any) {
	if t == nil || !t.enabled.Load() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "trace: "+format+"\n", args...)
}
