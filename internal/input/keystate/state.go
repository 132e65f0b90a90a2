package keystate

import (
	"github.com/dshills/keyloom/internal/input/keymap"
	"github.com/dshills/keyloom/internal/input/keysym"
)

// State is one projection of the keyboard's modifier and group state
// onto a layout: raw masks in, symbol lookups out. It is bound to the
// layout generation it was created under and refuses to serve once
// the layout is released or swapped.
type State struct {
	layout     *keymap.Layout
	generation uint64

	depressed keymap.Mods
	latched   keymap.Mods
	locked    keymap.Mods

	baseGroup    int32
	latchedGroup int32
	lockedGroup  int32

	mods     keymap.Mods
	group    int32
	released bool
}

// New binds a state to a layout. A nil or released layout cannot back
// a state.
func New(layout *keymap.Layout) (*State, error) {
	if layout == nil || layout.Released() {
		return nil, keymap.ErrIncompatibleLayout
	}
	return &State{
		layout:     layout,
		generation: layout.Generation(),
	}, nil
}

// ok gates every lookup: the state must not be released and its
// layout must still be the generation it was bound to.
func (s *State) ok() bool {
	return !s.released &&
		s.layout != nil &&
		!s.layout.Released() &&
		s.layout.Generation() == s.generation
}

// Update sets the raw modifier masks and group selectors and
// recomputes the effective values. Identical inputs produce identical
// state.
func (s *State) Update(depressed, latched, locked keymap.Mods, baseGroup, latchedGroup, lockedGroup int32) {
	s.depressed = depressed
	s.latched = latched
	s.locked = locked
	s.baseGroup = baseGroup
	s.latchedGroup = latchedGroup
	s.lockedGroup = lockedGroup

	s.mods = depressed | latched | locked
	s.group = baseGroup + latchedGroup + lockedGroup
}

// Mods returns the effective raw modifier mask.
func (s *State) Mods() keymap.Mods {
	return s.mods
}

// Depressed returns the held-down portion of the raw mask.
func (s *State) Depressed() keymap.Mods {
	return s.depressed
}

// Group returns the effective group before per-key wrapping.
func (s *State) Group() int32 {
	return s.group
}

// Layout returns the backing layout.
func (s *State) Layout() *keymap.Layout {
	return s.layout
}

// Generation returns the layout generation the state is bound to.
func (s *State) Generation() uint64 {
	return s.generation
}

// Symbols returns the symbol list the keycode selects under the
// current state, or nil when the state cannot serve.
func (s *State) Symbols(keycode uint32) []keysym.Symbol {
	if !s.ok() {
		return nil
	}
	return s.layout.Symbols(keycode, s.group, s.mods)
}

// Symbol returns the single symbol for the keycode, or false when the
// selected level holds zero or several symbols.
func (s *State) Symbol(keycode uint32) (keysym.Symbol, bool) {
	if !s.ok() {
		return keysym.None, false
	}
	return s.layout.Symbol(keycode, s.group, s.mods)
}

// Level returns the shift level the current state selects.
func (s *State) Level(keycode uint32) int {
	if !s.ok() {
		return 0
	}
	return s.layout.Level(keycode, s.group, s.mods)
}

// ConsumedMods returns the raw modifiers the keycode's level
// selection used up.
func (s *State) ConsumedMods(keycode uint32) keymap.Mods {
	if !s.ok() {
		return 0
	}
	return s.layout.ConsumedMods(keycode, s.group, s.mods)
}

// Text returns the literal text the keycode produces: the single
// symbol's character, with the control transform applied while a
// Control modifier is active. No symbol, a non-character symbol, or a
// transform with no character yield the empty string.
func (s *State) Text(keycode uint32) string {
	sym, ok := s.Symbol(keycode)
	if !ok {
		return ""
	}
	r := sym.Rune()
	if r == 0 {
		return ""
	}
	if s.mods&s.layout.ModMap().Control != 0 {
		r = controlRune(r)
		if r == 0 {
			return ""
		}
	}
	return string(r)
}

// controlRune applies the classic Control transform: letters map into
// 0x01–0x1A, the @–_ block onto 0x00–0x1F, question mark to DEL.
// Runes with no control form are returned unchanged.
func controlRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return r - 'a' + 1
	case r >= '@' && r <= '_':
		return r - '@'
	case r == '?':
		return 0x7f
	case r == ' ':
		return 0
	}
	return r
}

// Released reports whether the state has been torn down.
func (s *State) Released() bool {
	return s.released
}

// Release marks the state unusable. Called after its layout has been
// released, never before.
func (s *State) Release() {
	s.released = true
}
