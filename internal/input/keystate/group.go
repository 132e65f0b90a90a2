package keystate

import (
	"github.com/dshills/keyloom/internal/input/compose"
	"github.com/dshills/keyloom/internal/input/key"
	"github.com/dshills/keyloom/internal/input/keymap"
)

// Group bundles the resolution handles that live and die together:
// the Effective state (all modifiers applied), the Clean state (group
// selection only, never modifier bits), the Default state bound to
// the fallback layout, and the compose session. A layout swap rebuilds
// Effective and Clean atomically; Default survives until the fallback
// layout itself changes.
type Group struct {
	Effective *State
	Clean     *State
	Default   *State
	Compose   *compose.Session

	modmap keymap.ModifierMap

	depressed keymap.Mods
	latched   keymap.Mods
	locked    keymap.Mods

	baseGroup    int32
	latchedGroup int32
	lockedGroup  int32

	portable      key.Modifier
	unknownActive keymap.Mods
}

// NewGroup builds the handle set over an active and a fallback
// layout. The compose table may be nil, which disables composition.
func NewGroup(active, fallback *keymap.Layout, table *compose.Table) (*Group, error) {
	effective, err := New(active)
	if err != nil {
		return nil, err
	}
	clean, err := New(active)
	if err != nil {
		return nil, err
	}
	def, err := New(fallback)
	if err != nil {
		return nil, err
	}
	return &Group{
		Effective: effective,
		Clean:     clean,
		Default:   def,
		Compose:   compose.NewSession(table),
		modmap:    active.ModMap(),
	}, nil
}

// Update feeds one raw modifier/group snapshot to every state.
// Effective receives everything; Clean and Default receive the group
// selectors with zero modifier bits. The portable mask and the active
// unknown-modifier mask are derived once and retained. Identical
// inputs produce identical results.
func (g *Group) Update(depressed, latched, locked keymap.Mods, baseGroup, latchedGroup, lockedGroup int32) {
	g.depressed = depressed
	g.latched = latched
	g.locked = locked
	g.baseGroup = baseGroup
	g.latchedGroup = latchedGroup
	g.lockedGroup = lockedGroup

	g.Effective.Update(depressed, latched, locked, baseGroup, latchedGroup, lockedGroup)
	g.Clean.Update(0, 0, 0, baseGroup, latchedGroup, lockedGroup)
	g.Default.Update(0, 0, 0, baseGroup, latchedGroup, lockedGroup)

	raw := depressed | latched | locked
	g.portable = g.modmap.Portable(raw)
	g.unknownActive = g.modmap.UnknownActive(raw)
}

// Portable returns the portable modifier mask derived at the last
// update.
func (g *Group) Portable() key.Modifier {
	return g.portable
}

// UnknownActive returns the raw mask of active non-portable
// modifiers derived at the last update.
func (g *Group) UnknownActive() keymap.Mods {
	return g.unknownActive
}

// ShiftControlDepressed reports whether portable Shift and Control
// are both in the held-down set right now. Latched and locked
// modifiers do not count.
func (g *Group) ShiftControlDepressed() bool {
	return g.depressed&g.modmap.Shift != 0 && g.depressed&g.modmap.Control != 0
}

// TextWithoutControl reads the effective text for a keycode with
// Control cleared from the held-down set, leaving the live state
// untouched. Used so Shift+Control chords still yield printable text.
func (g *Group) TextWithoutControl(keycode uint32) string {
	scratch := *g.Effective
	scratch.Update(g.depressed&^g.modmap.Control, g.latched, g.locked,
		g.baseGroup, g.latchedGroup, g.lockedGroup)
	return scratch.Text(keycode)
}

// Rebind swaps Effective and Clean onto a new active layout, reapplies
// the retained raw inputs, and abandons any pending composition.
// Default keeps its fallback binding. Callers capture the previous
// states before rebinding and release them after the old layout.
func (g *Group) Rebind(active *keymap.Layout) error {
	effective, err := New(active)
	if err != nil {
		return err
	}
	clean, err := New(active)
	if err != nil {
		return err
	}
	g.Effective = effective
	g.Clean = clean
	g.modmap = active.ModMap()
	g.Compose.Reset()
	g.Update(g.depressed, g.latched, g.locked, g.baseGroup, g.latchedGroup, g.lockedGroup)
	return nil
}

// SetComposeTable swaps the compose table, abandoning any pending
// sequence.
func (g *Group) SetComposeTable(table *compose.Table) {
	g.Compose.SetTable(table)
}

// Release tears down all three states. The caller releases the
// layouts first, per the teardown order.
func (g *Group) Release() {
	g.Compose.Reset()
	g.Effective.Release()
	g.Clean.Release()
	g.Default.Release()
}
