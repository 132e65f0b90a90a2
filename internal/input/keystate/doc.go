// Package keystate tracks modifier and group state against compiled
// layouts.
//
// A State is one projection: raw modifier masks and group selectors
// in, per-keycode symbol lookups out. A Group bundles the three
// projections resolution needs, Effective (everything applied), Clean
// (groups only, no modifiers) and Default (the fallback layout), plus
// the compose session, and keeps them all updated from one raw
// snapshot. States are generation-checked: once their layout is
// released they stop serving rather than read freed tables.
package keystate
