package key

import (
	"fmt"
	"strings"
)

// Modifier is the portable modifier mask attached to key events.
// It carries only the six modifiers every platform agrees on; layout
// modifiers outside this set stay in the layout's raw mask.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModControl indicates the Control key.
	ModControl

	// ModAlt indicates the Alt key.
	ModAlt

	// ModSuper indicates the Super (logo) key.
	ModSuper

	// ModCapsLock indicates Caps Lock is engaged.
	ModCapsLock

	// ModNumLock indicates Num Lock is engaged.
	ModNumLock
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is held.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasControl returns true if Control is held.
func (m Modifier) HasControl() bool {
	return m.Has(ModControl)
}

// HasAlt returns true if Alt is held.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasSuper returns true if Super is held.
func (m Modifier) HasSuper() bool {
	return m.Has(ModSuper)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Shift+Control".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasControl() {
		parts = append(parts, "Control")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasSuper() {
		parts = append(parts, "Super")
	}
	if m.Has(ModCapsLock) {
		parts = append(parts, "CapsLock")
	}
	if m.Has(ModNumLock) {
		parts = append(parts, "NumLock")
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"shift":    ModShift,
	"s":        ModShift,
	"ctrl":     ModControl,
	"control":  ModControl,
	"c":        ModControl,
	"alt":      ModAlt,
	"a":        ModAlt,
	"option":   ModAlt,
	"opt":      ModAlt,
	"super":    ModSuper,
	"logo":     ModSuper,
	"win":      ModSuper,
	"cmd":      ModSuper,
	"capslock": ModCapsLock,
	"caps":     ModCapsLock,
	"lock":     ModCapsLock,
	"numlock":  ModNumLock,
	"num":      ModNumLock,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(name)]; ok {
		return m
	}
	return ModNone
}

// ParseModifiers parses a modifier string like "Shift+Control" or "s-c".
// Unrecognized parts are ignored.
func ParseModifiers(s string) Modifier {
	s = strings.ToLower(s)
	var parts []string
	if strings.Contains(s, "+") {
		parts = strings.Split(s, "+")
	} else if strings.Contains(s, "-") {
		parts = strings.Split(s, "-")
	} else {
		parts = []string{s}
	}

	var result Modifier
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if mod := ModifierFromName(part); mod != ModNone {
			result = result.With(mod)
		}
	}
	return result
}

// MarshalText encodes the mask in its "+"-joined form.
func (m Modifier) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a "+"-joined modifier mask. Unknown names
// are rejected rather than ignored.
func (m *Modifier) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*m = ModNone
		return nil
	}
	var result Modifier
	for _, part := range strings.Split(s, "+") {
		mod := ModifierFromName(strings.TrimSpace(part))
		if mod == ModNone {
			return fmt.Errorf("unknown modifier name %q", part)
		}
		result = result.With(mod)
	}
	*m = result
	return nil
}
