package ime

import (
	"github.com/dshills/keyloom/internal/input/key"
)

// Disposition is the gateway's verdict on a candidate event.
type Disposition uint8

const (
	// Forward lets the candidate continue to the application.
	Forward Disposition = iota

	// Consumed means the editor took the candidate; the caller must
	// not deliver it.
	Consumed
)

// String returns the lowercase disposition name.
func (d Disposition) String() string {
	switch d {
	case Forward:
		return "forward"
	case Consumed:
		return "consumed"
	default:
		return "unknown"
	}
}

type withheld struct {
	ev      key.Event
	keycode uint32
}

// Gateway sits between the resolver and the application callback. With
// a focused editor attached, presses are handed to the editor and
// withheld until it answers; without one, everything forwards
// untouched.
//
// Release suppression uses a single last-consumed-keycode slot: the
// release matching the most recently consumed press is swallowed, and
// an intervening non-consumed press of the same keycode re-arms it.
// Two consumed presses before a release overwrite the slot, so the
// first release leaks through. That limitation is deliberate; callers
// depend on the slot being exactly one deep.
type Gateway struct {
	editor  Editor
	deliver func(key.Event)

	serial   uint32
	withheld map[uint32]withheld

	lastConsumed uint32
	hasConsumed  bool

	preedit bool
}

// NewGateway builds a gateway delivering re-injected and synthesized
// events through deliver. No editor is attached yet.
func NewGateway(deliver func(key.Event)) *Gateway {
	return &Gateway{
		deliver:  deliver,
		withheld: make(map[uint32]withheld),
	}
}

// Attach connects an editor, replacing and closing any previous one.
func (g *Gateway) Attach(editor Editor) {
	if g.editor != nil {
		g.detach()
	}
	g.editor = editor
}

// Detach disconnects and closes the current editor, clearing any
// visible pre-edit first.
func (g *Gateway) Detach() {
	g.detach()
}

// Attached reports whether an editor is connected.
func (g *Gateway) Attached() bool {
	return g.editor != nil
}

// Offer presents a candidate event to the editor. Presses and repeats
// go to a focused editor and are withheld under a fresh serial;
// releases are answered locally from the last-consumed slot and never
// reach the editor.
func (g *Gateway) Offer(ev key.Event, keycode uint32) Disposition {
	switch ev.Action {
	case key.ActionPress, key.ActionRepeat:
		if g.editor == nil || !g.editor.Focused() {
			// An ordinary press of the suppressed keycode re-arms
			// its release.
			if g.hasConsumed && keycode == g.lastConsumed {
				g.hasConsumed = false
			}
			return Forward
		}
		g.serial++
		g.withheld[g.serial] = withheld{ev: ev, keycode: keycode}
		g.editor.ProcessKey(ev, keycode, g.serial)
		g.lastConsumed = keycode
		g.hasConsumed = true
		return Consumed

	case key.ActionRelease:
		if g.hasConsumed && keycode == g.lastConsumed {
			g.hasConsumed = false
			return Consumed
		}
		return Forward
	}
	return Forward
}

// HandleReply applies one asynchronous editor response. Must run on
// the dispatcher thread, like Offer.
func (g *Gateway) HandleReply(r Reply) {
	switch r := r.(type) {
	case ReplyHandled:
		delete(g.withheld, r.Serial)

	case ReplyIgnored:
		if w, ok := g.withheld[r.Serial]; ok {
			delete(g.withheld, r.Serial)
			g.deliver(w.ev)
		}

	case ReplyCommit:
		g.deliver(key.Event{Text: r.Text, IME: true})

	case ReplyPreedit:
		g.preedit = r.Text != ""
		g.deliver(key.Event{Text: r.Text, IME: true, Preedit: true})

	case ReplyForward:
		ev := key.Event{Symbol: r.Symbol, Action: r.Action, IME: true}
		if c := r.Symbol.Rune(); c >= 0x20 && c != 0x7f {
			ev.Text = string(c)
		}
		g.deliver(ev)

	case ReplyFailed:
		g.detach()
	}
}

// Close detaches and closes the editor, if any.
func (g *Gateway) Close() error {
	if g.editor == nil {
		return nil
	}
	if g.preedit {
		g.preedit = false
		g.deliver(key.Event{IME: true, Preedit: true})
	}
	err := g.editor.Close()
	g.editor = nil
	g.withheld = make(map[uint32]withheld)
	g.hasConsumed = false
	return err
}

// detach drops the editor and all per-editor state. Withheld events
// are lost; a visible pre-edit is cleared with a synthesized event so
// the application does not keep showing stale composition.
func (g *Gateway) detach() {
	if g.preedit {
		g.preedit = false
		g.deliver(key.Event{IME: true, Preedit: true})
	}
	if g.editor != nil {
		_ = g.editor.Close()
		g.editor = nil
	}
	g.withheld = make(map[uint32]withheld)
	g.hasConsumed = false
}
