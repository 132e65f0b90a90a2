// Package key defines the resolved key event vocabulary shared by
// the input pipeline and its consumers.
//
// This package defines the fundamental types for representing
// resolved keyboard input:
//
//   - Key: layout-independent identity of a physical key
//   - Modifier: the portable six-modifier mask
//   - Action: press, release or repeat
//   - Event: a fully resolved key event with symbol and text
//
// Key, Modifier, Action and the Event struct all marshal to and from
// text, so resolved events can be serialized for replay files and
// compared in traces.
package key
