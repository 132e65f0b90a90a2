package compose

import "github.com/dshills/keyloom/internal/input/keysym"

// Status classifies what one fed symbol did to the session.
type Status uint8

const (
	// FeedRejected means the symbol is no part of any sequence and
	// passes through unchanged. The session did not change.
	FeedRejected Status = iota
	// FeedComposing means the symbol extended a pending sequence.
	// Nothing is emitted.
	FeedComposing
	// FeedComposed means the symbol completed a sequence. The result
	// carries the composed text and final symbol.
	FeedComposed
	// FeedCancelled means the symbol broke the pending sequence. The
	// symbol is dropped and nothing is emitted.
	FeedCancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case FeedRejected:
		return "rejected"
	case FeedComposing:
		return "composing"
	case FeedComposed:
		return "composed"
	case FeedCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// FeedResult is the outcome of feeding one symbol. Text and Symbol
// are set for FeedComposed; Symbol echoes the input for FeedRejected.
type FeedResult struct {
	Status Status
	Text   string
	Symbol keysym.Symbol
}

// Session walks a compose table symbol by symbol. It is idle again
// immediately after any completed or cancelled sequence; only a
// pending sequence carries state between feeds.
type Session struct {
	table *Table
	node  *node
	seq   []keysym.Symbol
}

// NewSession creates a session over a table. A nil table is allowed
// and makes every feed a pass-through.
func NewSession(table *Table) *Session {
	return &Session{table: table}
}

// Feed advances the session by one symbol.
func (s *Session) Feed(sym keysym.Symbol) FeedResult {
	if sym == keysym.None || s.table == nil {
		return FeedResult{Status: FeedRejected, Symbol: sym}
	}

	next, ok := s.table.step(s.node, sym)
	if !ok {
		if s.node == nil {
			return FeedResult{Status: FeedRejected, Symbol: sym}
		}
		s.Reset()
		return FeedResult{Status: FeedCancelled}
	}

	if next.result != nil {
		res := *next.result
		s.Reset()
		return FeedResult{Status: FeedComposed, Text: res.Text, Symbol: res.Symbol}
	}

	s.node = next
	s.seq = append(s.seq, sym)
	return FeedResult{Status: FeedComposing}
}

// Composing reports whether a sequence is pending.
func (s *Session) Composing() bool {
	return s.node != nil
}

// Pending returns the symbols of the pending sequence, oldest first.
func (s *Session) Pending() []keysym.Symbol {
	if len(s.seq) == 0 {
		return nil
	}
	out := make([]keysym.Symbol, len(s.seq))
	copy(out, s.seq)
	return out
}

// Reset abandons any pending sequence. Layout swaps reset the session
// so a half-typed sequence never straddles two layouts.
func (s *Session) Reset() {
	s.node = nil
	s.seq = s.seq[:0]
}

// SetTable swaps the table and abandons any pending sequence.
func (s *Session) SetTable(table *Table) {
	s.table = table
	s.Reset()
}

// Table returns the session's current table.
func (s *Session) Table() *Table {
	return s.table
}
