package key

import (
	"fmt"
	"strings"
)

// Key identifies a physical key by its layout-independent meaning.
// Letters, digits, function keys and keypad digits occupy contiguous
// ranges so layout symbols can map onto them arithmetically.
type Key uint16

const (
	// KeyNone means the event carries no logical key identity.
	KeyNone Key = iota

	// Printable keys, named after their unshifted US-layout symbol
	KeySpace
	KeyApostrophe
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySemicolon
	KeyEqual
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyLeftBracket
	KeyBackslash
	KeyRightBracket
	KeyGrave

	// Editing keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete

	// Arrow keys
	KeyRight
	KeyLeft
	KeyDown
	KeyUp

	// Navigation keys
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd

	// Locks and system keys
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
	KeyMenu

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	// Keypad keys
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPDecimal
	KeyKPDivide
	KeyKPMultiply
	KeyKPSubtract
	KeyKPAdd
	KeyKPEnter
	KeyKPEqual

	// Modifier keys
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyLeftSuper
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	KeyRightSuper
)

// keyNames holds the canonical name for every key. Letters and
// digits render as themselves.
var keyNames = map[Key]string{
	KeyNone:         "None",
	KeySpace:        "Space",
	KeyApostrophe:   "'",
	KeyComma:        ",",
	KeyMinus:        "-",
	KeyPeriod:       ".",
	KeySlash:        "/",
	KeySemicolon:    ";",
	KeyEqual:        "=",
	KeyLeftBracket:  "[",
	KeyBackslash:    "\\",
	KeyRightBracket: "]",
	KeyGrave:        "`",
	KeyEscape:       "Escape",
	KeyEnter:        "Enter",
	KeyTab:          "Tab",
	KeyBackspace:    "Backspace",
	KeyInsert:       "Insert",
	KeyDelete:       "Delete",
	KeyRight:        "Right",
	KeyLeft:         "Left",
	KeyDown:         "Down",
	KeyUp:           "Up",
	KeyPageUp:       "PageUp",
	KeyPageDown:     "PageDown",
	KeyHome:         "Home",
	KeyEnd:          "End",
	KeyCapsLock:     "CapsLock",
	KeyScrollLock:   "ScrollLock",
	KeyNumLock:      "NumLock",
	KeyPrintScreen:  "PrintScreen",
	KeyPause:        "Pause",
	KeyMenu:         "Menu",
	KeyKPDecimal:    "KP.",
	KeyKPDivide:     "KP/",
	KeyKPMultiply:   "KP*",
	KeyKPSubtract:   "KP-",
	KeyKPAdd:        "KP+",
	KeyKPEnter:      "KPEnter",
	KeyKPEqual:      "KP=",
	KeyLeftShift:    "LeftShift",
	KeyLeftControl:  "LeftControl",
	KeyLeftAlt:      "LeftAlt",
	KeyLeftSuper:    "LeftSuper",
	KeyRightShift:   "RightShift",
	KeyRightControl: "RightControl",
	KeyRightAlt:     "RightAlt",
	KeyRightSuper:   "RightSuper",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + (k - KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + (k - Key0)))
	case k >= KeyF1 && k <= KeyF24:
		return fmt.Sprintf("F%d", k-KeyF1+1)
	case k >= KeyKP0 && k <= KeyKP9:
		return fmt.Sprintf("KP%d", k-KeyKP0)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// IsPrintable returns true if the key sits in the printable block.
func (k Key) IsPrintable() bool {
	return k >= KeySpace && k <= KeyGrave
}

// IsFunctionKey returns true if this is a function key (F1-F24).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF24
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyRight && k <= KeyUp
}

// IsNavigationKey returns true if this is a navigation key.
func (k Key) IsNavigationKey() bool {
	return k.IsArrowKey() || k == KeyHome || k == KeyEnd || k == KeyPageUp || k == KeyPageDown
}

// IsKeypadKey returns true if this is a keypad key.
func (k Key) IsKeypadKey() bool {
	return k >= KeyKP0 && k <= KeyKPEqual
}

// IsModifierKey returns true if pressing this key changes modifier
// state instead of producing input.
func (k Key) IsModifierKey() bool {
	return k >= KeyLeftShift && k <= KeyRightSuper
}

var keyNameIndex = buildKeyNameIndex()

func buildKeyNameIndex() map[string]Key {
	idx := make(map[string]Key, len(keyNames)+70)
	for k, name := range keyNames {
		idx[strings.ToLower(name)] = k
	}
	for k := KeyA; k <= KeyZ; k++ {
		idx[strings.ToLower(k.String())] = k
	}
	for k := Key0; k <= Key9; k++ {
		idx[k.String()] = k
	}
	for k := KeyF1; k <= KeyF24; k++ {
		idx[strings.ToLower(k.String())] = k
	}
	for k := KeyKP0; k <= KeyKP9; k++ {
		idx[strings.ToLower(k.String())] = k
	}
	// Accepted alternate spellings
	idx["esc"] = KeyEscape
	idx["return"] = KeyEnter
	idx["bs"] = KeyBackspace
	idx["del"] = KeyDelete
	idx["ins"] = KeyInsert
	idx["pgup"] = KeyPageUp
	idx["pgdn"] = KeyPageDown
	idx["apostrophe"] = KeyApostrophe
	idx["comma"] = KeyComma
	idx["minus"] = KeyMinus
	idx["period"] = KeyPeriod
	idx["slash"] = KeySlash
	idx["semicolon"] = KeySemicolon
	idx["equal"] = KeyEqual
	idx["leftbracket"] = KeyLeftBracket
	idx["backslash"] = KeyBackslash
	idx["rightbracket"] = KeyRightBracket
	idx["grave"] = KeyGrave
	return idx
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameIndex[name]; ok {
		return k
	}
	return KeyNone
}

// MarshalText encodes the key as its canonical name.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a key from its name.
func (k *Key) UnmarshalText(text []byte) error {
	parsed := KeyFromName(string(text))
	if parsed == KeyNone && !strings.EqualFold(string(text), "none") {
		return fmt.Errorf("unknown key name %q", string(text))
	}
	*k = parsed
	return nil
}
