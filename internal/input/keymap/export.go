package keymap

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// ExportJSON renders the compiled tables as a JSON document for
// diagnostics. The dump is not a layout description: it shows what
// the compiler actually built, portable masks and generation
// included.
func (l *Layout) ExportJSON() ([]byte, error) {
	doc := "{}"
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("name", l.name)
	set("id", l.id)
	set("generation", l.generation)
	set("released", l.released)
	set("modifiers", l.modNames)

	set("portable.shift", uint32(l.modmap.Shift))
	set("portable.control", uint32(l.modmap.Control))
	set("portable.alt", uint32(l.modmap.Alt))
	set("portable.super", uint32(l.modmap.Super))
	set("portable.capsLock", uint32(l.modmap.CapsLock))
	set("portable.numLock", uint32(l.modmap.NumLock))

	unknown := l.modmap.Unknown()
	names := make([]string, 0, unknown.Len())
	for _, i := range unknown.Indices() {
		names = append(names, l.ModifierName(i))
	}
	set("unknownModifiers", names)

	for _, kc := range l.Keycodes() {
		k := l.keys[kc]
		// The colon keeps sjson from treating the keycode as an array
		// index.
		base := fmt.Sprintf("keys.:%d", kc)
		set(base+".repeat", k.repeat)
		for gi, g := range k.groups {
			gbase := fmt.Sprintf("%s.groups.%d", base, gi)
			set(gbase+".type", g.typ.name)
			for li, syms := range g.symbols {
				names := make([]string, len(syms))
				for si, s := range syms {
					names[si] = s.String()
				}
				set(fmt.Sprintf("%s.levels.%d", gbase, li), names)
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("exporting layout %q: %w", l.name, err)
	}
	return []byte(doc), nil
}
