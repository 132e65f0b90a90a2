package key

import (
	"fmt"
	"strings"

	"github.com/dshills/keyloom/internal/input/keysym"
)

// Event is a fully resolved key event as delivered to the
// application callback.
type Event struct {
	// Key identifies the key independent of the active layout.
	// KeyNone when the symbol has no logical equivalent.
	Key Key `json:"key,omitempty"`

	// Symbol is the layout-produced symbol for the event.
	Symbol keysym.Symbol `json:"symbol,omitempty"`

	// Action records press, release or repeat.
	Action Action `json:"action"`

	// Mods is the portable modifier mask in effect.
	Mods Modifier `json:"mods,omitempty"`

	// Text is the literal text the event produces, if any.
	Text string `json:"text,omitempty"`

	// IME marks events produced by an input-method editor rather
	// than direct layout resolution.
	IME bool `json:"ime,omitempty"`

	// Preedit marks IME composition updates. Text holds the
	// current pre-edit string, empty when the pre-edit is cleared.
	Preedit bool `json:"preedit,omitempty"`

	// Fallback marks events resolved against the fallback layout
	// because the active layout had nothing for the key.
	Fallback bool `json:"fallback,omitempty"`
}

// NewEvent creates a resolved key event.
func NewEvent(k Key, sym keysym.Symbol, action Action, mods Modifier) Event {
	return Event{
		Key:    k,
		Symbol: sym,
		Action: action,
		Mods:   mods,
	}
}

// IsText returns true if the event carries committed text.
func (e Event) IsText() bool {
	return e.Text != "" && !e.Preedit
}

// IsModified returns true if a non-lock modifier is held.
func (e Event) IsModified() bool {
	return e.Mods&(ModShift|ModControl|ModAlt|ModSuper) != ModNone
}

// Equals returns true if two events are identical.
func (e Event) Equals(other Event) bool {
	return e == other
}

// String returns a single-line representation for traces and logs.
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Action.String())
	b.WriteByte(' ')
	switch {
	case e.Key != KeyNone:
		b.WriteString(e.Key.String())
	case e.Symbol != keysym.None:
		b.WriteString(e.Symbol.String())
	default:
		b.WriteString("None")
	}
	if !e.Mods.IsEmpty() {
		b.WriteString(" [")
		b.WriteString(e.Mods.String())
		b.WriteByte(']')
	}
	if e.Text != "" {
		fmt.Fprintf(&b, " %q", e.Text)
	}
	if e.Preedit {
		b.WriteString(" (preedit)")
	} else if e.IME {
		b.WriteString(" (ime)")
	}
	if e.Fallback {
		b.WriteString(" (fallback)")
	}
	return b.String()
}
