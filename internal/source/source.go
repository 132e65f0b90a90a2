package source

import "github.com/dshills/keyloom/internal/input"

// Source is a stream of raw key transitions. Transitions returns the
// same channel on every call; the channel closes when the source is
// exhausted or closed. Close is idempotent.
type Source interface {
	Transitions() <-chan input.Transition
	Close() error
}
