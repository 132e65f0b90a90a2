package input

import "sync/atomic"

// Metrics counts resolution outcomes. Counters are atomics so
// diagnostic readers on other goroutines never touch the resolution
// path; the pipeline itself only ever increments.
type Metrics struct {
	resolved    atomic.Uint64
	ambiguous   atomic.Uint64
	composing   atomic.Uint64
	composed    atomic.Uint64
	fallback    atomic.Uint64
	discarded   atomic.Uint64
	imeConsumed atomic.Uint64
}

// NewMetrics creates a zeroed metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	// Resolved counts events that reached the application callback.
	Resolved uint64

	// Ambiguous counts transitions filtered because a keycode did
	// not produce exactly one symbol. Expected, never an error.
	Ambiguous uint64

	// Composing counts transitions swallowed while a compose
	// sequence was pending.
	Composing uint64

	// Composed counts terminal compose results delivered.
	Composed uint64

	// Fallback counts resolutions answered by the fallback layout.
	Fallback uint64

	// Discarded counts group-switch symbols and repeats of
	// non-repeating keys.
	Discarded uint64

	// IMEConsumed counts candidates taken by the input-method editor.
	IMEConsumed uint64
}

// Snapshot returns a point-in-time view of all counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Resolved:    m.resolved.Load(),
		Ambiguous:   m.ambiguous.Load(),
		Composing:   m.composing.Load(),
		Composed:    m.composed.Load(),
		Fallback:    m.fallback.Load(),
		Discarded:   m.discarded.Load(),
		IMEConsumed: m.imeConsumed.Load(),
	}
}

// Reset clears every counter.
func (m *Metrics) Reset() {
	m.resolved.Store(0)
	m.ambiguous.Store(0)
	m.composing.Store(0)
	m.composed.Store(0)
	m.fallback.Store(0)
	m.discarded.Store(0)
	m.imeConsumed.Store(0)
}

// Resolved returns the number of events delivered to the application.
func (m *Metrics) Resolved() uint64 {
	return m.resolved.Load()
}

// Ambiguous returns the number of silently filtered transitions.
func (m *Metrics) Ambiguous() uint64 {
	return m.ambiguous.Load()
}
