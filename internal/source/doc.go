// Package source produces the raw key transitions the resolution
// pipeline consumes. Real deployments would receive transitions from
// a platform event dispatcher; the sources here stand in for one so
// the demo binary can run anywhere.
//
// Replay reads transitions from a JSON-lines trace, one object per
// line, and is deterministic: the same trace always produces the same
// event stream. Recorder writes the matching format, so a live
// session can be captured once and replayed as a regression fixture.
//
// Interactive synthesizes transitions from terminal key events. The
// terminal view of the keyboard is lossy: releases, auto-repeat,
// latches, locks and most modifier state never reach it, and control
// chords like Ctrl+I are indistinguishable from the keys that share
// their byte (Tab). The probe therefore restates the whole modifier
// mask on every synthesized transition and follows each press with an
// immediate release. It is a demonstration tool, not a conformance
// harness.
package source
