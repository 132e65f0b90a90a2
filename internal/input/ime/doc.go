// Package ime is the boundary between the key event resolver and an
// external input-method editor.
//
// The Gateway offers each candidate event to a focused editor before
// it reaches the application. Offers never block: presses are withheld
// under a serial and reported consumed immediately, and the editor's
// verdict arrives later as a Reply that the application loop feeds
// back through HandleReply. Editor-produced text (commits, pre-edit
// updates, forwarded keys) enters the application the same way,
// flagged IME and bypassing layout resolution entirely.
//
// On Linux the concrete editor speaks the IBus protocol over D-Bus;
// everywhere else DialIBus reports ErrUnavailable and the gateway
// simply forwards everything.
package ime
