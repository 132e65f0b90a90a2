// Package input resolves hardware key transitions into portable key
// events.
//
// The pipeline runs entirely on the dispatcher thread that owns the
// keyboard source. Each Transition updates the modifier state group,
// then resolves through the active layout, the compose session, and
// the static logical-key table into zero or one key.Event. The event
// is offered to the IME gateway before it reaches the application
// callback; input-method replies re-enter through the gateway on the
// same thread.
//
// Resolution never returns errors. Ambiguous keycodes, pending
// compositions, group switches, and repeats of non-repeating keys are
// all normal filtered outcomes, visible only in Metrics and the
// optional step Tracer. The only reported errors are layout and
// compose-table compile failures, carried on Pipeline.Errors.
package input
