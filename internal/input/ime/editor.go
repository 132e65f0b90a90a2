package ime

import (
	"github.com/dshills/keyloom/internal/input/key"
	"github.com/dshills/keyloom/internal/input/keysym"
)

// Editor is an external input-method editor the gateway can offer key
// events to. ProcessKey is fire-and-forget: the editor answers later
// with Reply values on its channel, which the application loop drains
// and hands to Gateway.HandleReply on the dispatcher thread.
type Editor interface {
	// Focused reports whether the editor currently claims the
	// keyboard. Unfocused editors are never offered events.
	Focused() bool

	// ProcessKey submits a key event for the editor to handle. The
	// serial ties the eventual ReplyHandled or ReplyIgnored back to
	// the withheld event. Never blocks.
	ProcessKey(ev key.Event, keycode, serial uint32)

	// Replies is the stream of asynchronous editor responses.
	Replies() <-chan Reply

	// Close tears the editor connection down. The reply channel is
	// closed once no further replies will arrive.
	Close() error
}

// Reply is an asynchronous response from an editor.
type Reply interface {
	isReply()
}

// ReplyHandled reports that the editor kept the event offered under
// Serial. The withheld event is dropped.
type ReplyHandled struct {
	Serial uint32
}

// ReplyIgnored reports that the editor did not want the event offered
// under Serial. The gateway re-injects the withheld event.
type ReplyIgnored struct {
	Serial uint32
}

// ReplyCommit carries finished text the editor composed. It becomes an
// IME text event delivered straight to the application.
type ReplyCommit struct {
	Text string
}

// ReplyPreedit carries the current in-progress composition. Empty text
// clears the pre-edit display.
type ReplyPreedit struct {
	Text   string
	Cursor int
}

// ReplyForward asks the gateway to deliver a key the editor produced
// itself, bypassing layout resolution.
type ReplyForward struct {
	Symbol keysym.Symbol
	Action key.Action
}

// ReplyFailed reports that the editor connection broke. The gateway
// clears any visible pre-edit and detaches the editor.
type ReplyFailed struct {
	Err error
}

func (ReplyHandled) isReply() {}
func (ReplyIgnored) isReply() {}
func (ReplyCommit) isReply()  {}
func (ReplyPreedit) isReply() {}
func (ReplyForward) isReply() {}
func (ReplyFailed) isReply()  {}
