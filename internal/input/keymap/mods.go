package keymap

import (
	"strings"

	"github.com/dshills/keyloom/internal/input/key"
)

// Mods is a raw layout modifier bitmask. Bit positions are indices
// into the owning layout's modifier table and mean nothing outside
// that layout's generation.
type Mods uint32

// ModIndex is a position in a layout's modifier table.
type ModIndex uint8

// MaxModifiers is the widest modifier table a layout may declare.
const MaxModifiers = 32

// MaxUnknownModifiers caps how many non-portable modifiers a layout
// may contribute to the unknown set. Extra ones are silently capped.
const MaxUnknownModifiers = 16

// Bit returns the mask bit for a modifier index.
func Bit(i ModIndex) Mods {
	return Mods(1) << i
}

// Has returns true if m contains every bit of mask.
func (m Mods) Has(mask Mods) bool {
	return mask != 0 && m&mask == mask
}

// ModifierMap projects a layout's raw modifier bits onto the
// portable six-modifier vocabulary. It is rebuilt on every compile
// and never survives a layout swap.
type ModifierMap struct {
	Shift    Mods
	Control  Mods
	Alt      Mods
	Super    Mods
	CapsLock Mods
	NumLock  Mods

	others *UnknownSet
}

// Portable derives the portable modifier mask from raw bits.
func (m ModifierMap) Portable(raw Mods) key.Modifier {
	var p key.Modifier
	if raw&m.Shift != 0 {
		p |= key.ModShift
	}
	if raw&m.Control != 0 {
		p |= key.ModControl
	}
	if raw&m.Alt != 0 {
		p |= key.ModAlt
	}
	if raw&m.Super != 0 {
		p |= key.ModSuper
	}
	if raw&m.CapsLock != 0 {
		p |= key.ModCapsLock
	}
	if raw&m.NumLock != 0 {
		p |= key.ModNumLock
	}
	return p
}

// Mask returns the raw bits backing a single portable modifier.
func (m ModifierMap) Mask(mod key.Modifier) Mods {
	var raw Mods
	if mod.Has(key.ModShift) {
		raw |= m.Shift
	}
	if mod.Has(key.ModControl) {
		raw |= m.Control
	}
	if mod.Has(key.ModAlt) {
		raw |= m.Alt
	}
	if mod.Has(key.ModSuper) {
		raw |= m.Super
	}
	if mod.Has(key.ModCapsLock) {
		raw |= m.CapsLock
	}
	if mod.Has(key.ModNumLock) {
		raw |= m.NumLock
	}
	return raw
}

// Unknown returns the layout's non-portable modifier set.
func (m ModifierMap) Unknown() *UnknownSet {
	return m.others
}

// UnknownActive returns the raw bits of raw that belong to
// non-portable modifiers.
func (m ModifierMap) UnknownActive(raw Mods) Mods {
	if m.others == nil {
		return 0
	}
	return raw & m.others.mask
}

// UnknownSet is the ordered set of modifier indices the portable
// vocabulary has no name for. Order is table order, and the set
// holds at most MaxUnknownModifiers entries.
type UnknownSet struct {
	indices []ModIndex
	mask    Mods
}

func (u *UnknownSet) add(i ModIndex) bool {
	if u.Contains(i) {
		return true
	}
	if len(u.indices) >= MaxUnknownModifiers {
		return false
	}
	u.indices = append(u.indices, i)
	u.mask |= Bit(i)
	return true
}

// Len returns the number of tracked unknown modifiers.
func (u *UnknownSet) Len() int {
	if u == nil {
		return 0
	}
	return len(u.indices)
}

// Contains reports whether the index is in the set.
func (u *UnknownSet) Contains(i ModIndex) bool {
	if u == nil {
		return false
	}
	return u.mask&Bit(i) != 0
}

// Indices returns the tracked indices in table order.
func (u *UnknownSet) Indices() []ModIndex {
	if u == nil {
		return nil
	}
	out := make([]ModIndex, len(u.indices))
	copy(out, u.indices)
	return out
}

// Mask returns the combined raw mask of the set.
func (u *UnknownSet) Mask() Mods {
	if u == nil {
		return 0
	}
	return u.mask
}

// portableModAliases maps modifier table names onto the portable
// vocabulary. Unlisted names land in the unknown set.
var portableModAliases = map[string]key.Modifier{
	"shift":    key.ModShift,
	"control":  key.ModControl,
	"ctrl":     key.ModControl,
	"alt":      key.ModAlt,
	"mod1":     key.ModAlt,
	"meta":     key.ModAlt,
	"super":    key.ModSuper,
	"mod4":     key.ModSuper,
	"logo":     key.ModSuper,
	"win":      key.ModSuper,
	"lock":     key.ModCapsLock,
	"caps":     key.ModCapsLock,
	"capslock": key.ModCapsLock,
	"numlock":  key.ModNumLock,
	"mod2":     key.ModNumLock,
	"num":      key.ModNumLock,
}

// buildModifierMap classifies an ordered modifier table. Names that
// alias the same portable modifier share its mask.
func buildModifierMap(names []string) ModifierMap {
	m := ModifierMap{others: &UnknownSet{}}
	for i, name := range names {
		bit := Bit(ModIndex(i))
		switch portableModAliases[strings.ToLower(name)] {
		case key.ModShift:
			m.Shift |= bit
		case key.ModControl:
			m.Control |= bit
		case key.ModAlt:
			m.Alt |= bit
		case key.ModSuper:
			m.Super |= bit
		case key.ModCapsLock:
			m.CapsLock |= bit
		case key.ModNumLock:
			m.NumLock |= bit
		default:
			m.others.add(ModIndex(i))
		}
	}
	return m
}
