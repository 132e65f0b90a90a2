package keymap

import (
	"sort"
	"strings"

	"github.com/dshills/keyloom/internal/input/keysym"
)

// Layout is a compiled keyboard layout. It is immutable after
// compilation: lookups never mutate it, and a swap produces a whole
// new Layout under a new generation. After Release every lookup
// returns nothing, which is how stale handles surface.
type Layout struct {
	name       string
	id         string
	generation uint64

	modNames []string
	modIndex map[string]ModIndex
	modmap   ModifierMap

	types     map[string]*keyType
	keys      map[uint32]*compiledKey
	maxGroups int

	reverse map[keysym.Symbol]KeyPosition

	released bool
}

// keyType is a compiled key type: which modifiers select shift
// levels and which combos preserve their modifiers from consumption.
type keyType struct {
	name      string
	mask      Mods
	levels    map[Mods]int
	preserve  map[Mods]Mods
	numLevels int
}

type keyGroup struct {
	typ     *keyType
	symbols [][]keysym.Symbol
}

type compiledKey struct {
	groups []keyGroup
	repeat bool
}

// KeyPosition locates a symbol on the layout: the keycode, group and
// shift level it lives at, and a modifier combo that selects that
// level.
type KeyPosition struct {
	Keycode uint32
	Group   int32
	Level   int
	Mods    Mods
}

// Name returns the layout's declared name.
func (l *Layout) Name() string {
	return l.name
}

// ID returns the unique id minted for this compilation.
func (l *Layout) ID() string {
	return l.id
}

// Generation returns the compile generation. State handles bound to
// an older generation refuse to serve.
func (l *Layout) Generation() uint64 {
	return l.generation
}

// NumModifiers returns the size of the modifier table.
func (l *Layout) NumModifiers() int {
	return len(l.modNames)
}

// ModifierName returns the table name at index i.
func (l *Layout) ModifierName(i ModIndex) string {
	if int(i) >= len(l.modNames) {
		return ""
	}
	return l.modNames[i]
}

// ModifierIndex resolves a table name (case-insensitive).
func (l *Layout) ModifierIndex(name string) (ModIndex, bool) {
	i, ok := l.modIndex[strings.ToLower(name)]
	return i, ok
}

// ModMap returns the portable modifier projection for this layout.
func (l *Layout) ModMap() ModifierMap {
	return l.modmap
}

// MaxGroups returns the widest group table any key declares.
func (l *Layout) MaxGroups() int {
	return l.maxGroups
}

// NumGroups returns how many groups the keycode defines.
func (l *Layout) NumGroups(keycode uint32) int {
	if l.released {
		return 0
	}
	k, ok := l.keys[keycode]
	if !ok {
		return 0
	}
	return len(k.groups)
}

// group wraps an effective group index onto the key's own table.
func (k *compiledKey) group(g int32) keyGroup {
	n := int32(len(k.groups))
	g = ((g % n) + n) % n
	return k.groups[g]
}

// level selects the shift level for a modifier mask. Combos without
// a map entry and out-of-range entries land on the first level.
func (g keyGroup) level(mods Mods) int {
	lv, ok := g.typ.levels[mods&g.typ.mask]
	if !ok || lv < 0 || lv >= len(g.symbols) {
		return 0
	}
	return lv
}

// Symbols returns the symbol list for a keycode under a group and
// modifier mask. Unknown keycodes and released layouts return nil.
func (l *Layout) Symbols(keycode uint32, group int32, mods Mods) []keysym.Symbol {
	if l.released {
		return nil
	}
	k, ok := l.keys[keycode]
	if !ok || len(k.groups) == 0 {
		return nil
	}
	g := k.group(group)
	return g.symbols[g.level(mods)]
}

// Symbol returns the single symbol for the position, or false when
// the level holds zero or several symbols.
func (l *Layout) Symbol(keycode uint32, group int32, mods Mods) (keysym.Symbol, bool) {
	syms := l.Symbols(keycode, group, mods)
	if len(syms) != 1 || syms[0] == keysym.None {
		return keysym.None, false
	}
	return syms[0], true
}

// Level returns the shift level the mask selects for the keycode.
func (l *Layout) Level(keycode uint32, group int32, mods Mods) int {
	if l.released {
		return 0
	}
	k, ok := l.keys[keycode]
	if !ok || len(k.groups) == 0 {
		return 0
	}
	g := k.group(group)
	return g.level(mods)
}

// ConsumedMods returns the modifiers the level selection used up:
// the type's mask minus whatever the matched combo preserves.
func (l *Layout) ConsumedMods(keycode uint32, group int32, mods Mods) Mods {
	if l.released {
		return 0
	}
	k, ok := l.keys[keycode]
	if !ok || len(k.groups) == 0 {
		return 0
	}
	typ := k.group(group).typ
	active := mods & typ.mask
	return typ.mask &^ typ.preserve[active]
}

// Repeats reports whether the keycode participates in auto-repeat.
func (l *Layout) Repeats(keycode uint32) bool {
	if l.released {
		return false
	}
	k, ok := l.keys[keycode]
	if !ok {
		return false
	}
	return k.repeat
}

// Keycodes returns every keycode the layout binds, ascending.
func (l *Layout) Keycodes() []uint32 {
	out := make([]uint32, 0, len(l.keys))
	for kc := range l.keys {
		out = append(out, kc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ReverseLookup finds where a symbol lives on the layout, preferring
// the lowest keycode, first group and lowest level it appears at.
func (l *Layout) ReverseLookup(sym keysym.Symbol) (KeyPosition, bool) {
	if l.released {
		return KeyPosition{}, false
	}
	pos, ok := l.reverse[sym]
	return pos, ok
}

// Released reports whether the layout has been torn down.
func (l *Layout) Released() bool {
	return l.released
}

// Release tears the layout down. The pipeline calls this exactly
// once per layout, after rebinding states to a successor.
func (l *Layout) Release() {
	l.released = true
}

// FormatMods renders a raw mask with this layout's modifier names.
func (l *Layout) FormatMods(m Mods) string {
	if m == 0 {
		return "None"
	}
	var parts []string
	for i, name := range l.modNames {
		if m&Bit(ModIndex(i)) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "+")
}
