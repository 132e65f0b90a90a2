package keysym

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnknownName reports a keysym name that is not in the vocabulary.
var ErrUnknownName = errors.New("unknown keysym name")

// canonicalNames holds the X11 spelling used by String. Printable
// symbols are rendered as their character and need no entry here.
var canonicalNames = map[Symbol]string{
	0x0020:     "space",
	Backspace:  "BackSpace",
	Tab:        "Tab",
	Linefeed:   "Linefeed",
	Clear:      "Clear",
	Return:     "Return",
	Pause:      "Pause",
	ScrollLock: "Scroll_Lock",
	SysReq:     "Sys_Req",
	Escape:     "Escape",
	Delete:     "Delete",
	MultiKey:   "Multi_key",
	Codeinput:  "Codeinput",
	ModeSwitch: "Mode_switch",
	NumLock:    "Num_Lock",

	Home:     "Home",
	Left:     "Left",
	Up:       "Up",
	Right:    "Right",
	Down:     "Down",
	PageUp:   "Prior",
	PageDown: "Next",
	End:      "End",
	Begin:    "Begin",

	Select:  "Select",
	Print:   "Print",
	Execute: "Execute",
	Insert:  "Insert",
	Undo:    "Undo",
	Redo:    "Redo",
	Menu:    "Menu",
	Find:    "Find",
	Cancel:  "Cancel",
	Help:    "Help",
	Break:   "Break",

	KPSpace:     "KP_Space",
	KPTab:       "KP_Tab",
	KPEnter:     "KP_Enter",
	KPHome:      "KP_Home",
	KPLeft:      "KP_Left",
	KPUp:        "KP_Up",
	KPRight:     "KP_Right",
	KPDown:      "KP_Down",
	KPPageUp:    "KP_Prior",
	KPPageDown:  "KP_Next",
	KPEnd:       "KP_End",
	KPBegin:     "KP_Begin",
	KPInsert:    "KP_Insert",
	KPDelete:    "KP_Delete",
	KPMultiply:  "KP_Multiply",
	KPAdd:       "KP_Add",
	KPSeparator: "KP_Separator",
	KPSubtract:  "KP_Subtract",
	KPDecimal:   "KP_Decimal",
	KPDivide:    "KP_Divide",
	KP0:         "KP_0",
	KP1:         "KP_1",
	KP2:         "KP_2",
	KP3:         "KP_3",
	KP4:         "KP_4",
	KP5:         "KP_5",
	KP6:         "KP_6",
	KP7:         "KP_7",
	KP8:         "KP_8",
	KP9:         "KP_9",
	KPEqual:     "KP_Equal",

	F1:  "F1",
	F2:  "F2",
	F3:  "F3",
	F4:  "F4",
	F5:  "F5",
	F6:  "F6",
	F7:  "F7",
	F8:  "F8",
	F9:  "F9",
	F10: "F10",
	F11: "F11",
	F12: "F12",
	F13: "F13",
	F14: "F14",
	F15: "F15",
	F16: "F16",
	F17: "F17",
	F18: "F18",
	F19: "F19",
	F20: "F20",
	F21: "F21",
	F22: "F22",
	F23: "F23",
	F24: "F24",

	ShiftL:    "Shift_L",
	ShiftR:    "Shift_R",
	ControlL:  "Control_L",
	ControlR:  "Control_R",
	CapsLock:  "Caps_Lock",
	ShiftLock: "Shift_Lock",
	MetaL:     "Meta_L",
	MetaR:     "Meta_R",
	AltL:      "Alt_L",
	AltR:      "Alt_R",
	SuperL:    "Super_L",
	SuperR:    "Super_R",
	HyperL:    "Hyper_L",
	HyperR:    "Hyper_R",

	ISOLock:           "ISO_Lock",
	ISOLevel3Shift:    "ISO_Level3_Shift",
	ISOLevel3Latch:    "ISO_Level3_Latch",
	ISOLevel3Lock:     "ISO_Level3_Lock",
	ISOGroupLatch:     "ISO_Group_Latch",
	ISOGroupLock:      "ISO_Group_Lock",
	ISONextGroup:      "ISO_Next_Group",
	ISONextGroupLock:  "ISO_Next_Group_Lock",
	ISOPrevGroup:      "ISO_Prev_Group",
	ISOPrevGroupLock:  "ISO_Prev_Group_Lock",
	ISOFirstGroup:     "ISO_First_Group",
	ISOFirstGroupLock: "ISO_First_Group_Lock",
	ISOLastGroup:      "ISO_Last_Group",
	ISOLastGroupLock:  "ISO_Last_Group_Lock",
	ISOLevel5Shift:    "ISO_Level5_Shift",
	ISOLevel5Latch:    "ISO_Level5_Latch",
	ISOLevel5Lock:     "ISO_Level5_Lock",
	ISOLeftTab:        "ISO_Left_Tab",

	DeadGrave:           "dead_grave",
	DeadAcute:           "dead_acute",
	DeadCircumflex:      "dead_circumflex",
	DeadTilde:           "dead_tilde",
	DeadMacron:          "dead_macron",
	DeadBreve:           "dead_breve",
	DeadAbovedot:        "dead_abovedot",
	DeadDiaeresis:       "dead_diaeresis",
	DeadAbovering:       "dead_abovering",
	DeadDoubleacute:     "dead_doubleacute",
	DeadCaron:           "dead_caron",
	DeadCedilla:         "dead_cedilla",
	DeadOgonek:          "dead_ogonek",
	DeadIota:            "dead_iota",
	DeadVoicedSound:     "dead_voiced_sound",
	DeadSemivoicedSound: "dead_semivoiced_sound",
	DeadBelowdot:        "dead_belowdot",
	DeadHook:            "dead_hook",
	DeadHorn:            "dead_horn",
	DeadStroke:          "dead_stroke",
	DeadCurrency:        "dead_currency",
}

// nameAliases adds accepted spellings beyond the canonical ones,
// including the X11 names for ASCII punctuation.
var nameAliases = map[string]Symbol{
	"enter":     Return,
	"esc":       Escape,
	"Page_Up":   PageUp,
	"PageUp":    PageUp,
	"Page_Down": PageDown,
	"PageDown":  PageDown,
	"del":       Delete,

	"space":        0x0020,
	"exclam":       0x0021,
	"quotedbl":     0x0022,
	"numbersign":   0x0023,
	"dollar":       0x0024,
	"percent":      0x0025,
	"ampersand":    0x0026,
	"apostrophe":   0x0027,
	"parenleft":    0x0028,
	"parenright":   0x0029,
	"asterisk":     0x002a,
	"plus":         0x002b,
	"comma":        0x002c,
	"minus":        0x002d,
	"period":       0x002e,
	"slash":        0x002f,
	"colon":        0x003a,
	"semicolon":    0x003b,
	"less":         0x003c,
	"equal":        0x003d,
	"greater":      0x003e,
	"question":     0x003f,
	"at":           0x0040,
	"bracketleft":  0x005b,
	"backslash":    0x005c,
	"bracketright": 0x005d,
	"asciicircum":  0x005e,
	"underscore":   0x005f,
	"grave":        0x0060,
	"braceleft":    0x007b,
	"bar":          0x007c,
	"braceright":   0x007d,
	"asciitilde":   0x007e,
}

// latin1Names are the X11 names of the Latin-1 supplement, whose
// keysym values equal their codepoints. Case distinguishes letters
// ("Aacute" vs "aacute"), so these resolve case-sensitively.
var latin1Names = map[string]Symbol{
	"nobreakspace":   0x00a0,
	"exclamdown":     0x00a1,
	"cent":           0x00a2,
	"sterling":       0x00a3,
	"currency":       0x00a4,
	"yen":            0x00a5,
	"brokenbar":      0x00a6,
	"section":        0x00a7,
	"diaeresis":      0x00a8,
	"copyright":      0x00a9,
	"ordfeminine":    0x00aa,
	"guillemotleft":  0x00ab,
	"notsign":        0x00ac,
	"hyphen":         0x00ad,
	"registered":     0x00ae,
	"macron":         0x00af,
	"degree":         0x00b0,
	"plusminus":      0x00b1,
	"twosuperior":    0x00b2,
	"threesuperior":  0x00b3,
	"acute":          0x00b4,
	"mu":             0x00b5,
	"paragraph":      0x00b6,
	"periodcentered": 0x00b7,
	"cedilla":        0x00b8,
	"onesuperior":    0x00b9,
	"masculine":      0x00ba,
	"guillemotright": 0x00bb,
	"onequarter":     0x00bc,
	"onehalf":        0x00bd,
	"threequarters":  0x00be,
	"questiondown":   0x00bf,
	"Agrave":         0x00c0,
	"Aacute":         0x00c1,
	"Acircumflex":    0x00c2,
	"Atilde":         0x00c3,
	"Adiaeresis":     0x00c4,
	"Aring":          0x00c5,
	"AE":             0x00c6,
	"Ccedilla":       0x00c7,
	"Egrave":         0x00c8,
	"Eacute":         0x00c9,
	"Ecircumflex":    0x00ca,
	"Ediaeresis":     0x00cb,
	"Igrave":         0x00cc,
	"Iacute":         0x00cd,
	"Icircumflex":    0x00ce,
	"Idiaeresis":     0x00cf,
	"ETH":            0x00d0,
	"Ntilde":         0x00d1,
	"Ograve":         0x00d2,
	"Oacute":         0x00d3,
	"Ocircumflex":    0x00d4,
	"Otilde":         0x00d5,
	"Odiaeresis":     0x00d6,
	"multiply":       0x00d7,
	"Oslash":         0x00d8,
	"Ooblique":       0x00d8,
	"Ugrave":         0x00d9,
	"Uacute":         0x00da,
	"Ucircumflex":    0x00db,
	"Udiaeresis":     0x00dc,
	"Yacute":         0x00dd,
	"THORN":          0x00de,
	"ssharp":         0x00df,
	"agrave":         0x00e0,
	"aacute":         0x00e1,
	"acircumflex":    0x00e2,
	"atilde":         0x00e3,
	"adiaeresis":     0x00e4,
	"aring":          0x00e5,
	"ae":             0x00e6,
	"ccedilla":       0x00e7,
	"egrave":         0x00e8,
	"eacute":         0x00e9,
	"ecircumflex":    0x00ea,
	"ediaeresis":     0x00eb,
	"igrave":         0x00ec,
	"iacute":         0x00ed,
	"icircumflex":    0x00ee,
	"idiaeresis":     0x00ef,
	"eth":            0x00f0,
	"ntilde":         0x00f1,
	"ograve":         0x00f2,
	"oacute":         0x00f3,
	"ocircumflex":    0x00f4,
	"otilde":         0x00f5,
	"odiaeresis":     0x00f6,
	"division":       0x00f7,
	"oslash":         0x00f8,
	"ooblique":       0x00f8,
	"ugrave":         0x00f9,
	"uacute":         0x00fa,
	"ucircumflex":    0x00fb,
	"udiaeresis":     0x00fc,
	"yacute":         0x00fd,
	"thorn":          0x00fe,
	"ydiaeresis":     0x00ff,
}

var exactNames, foldedNames = buildNameIndex()

// buildNameIndex builds the exact lookup plus a case-folded one for
// convenience. Names whose fold is ambiguous, like the Latin-1 case
// pairs, resolve only exactly.
func buildNameIndex() (exact, folded map[string]Symbol) {
	exact = make(map[string]Symbol, len(canonicalNames)+len(nameAliases)+len(latin1Names))
	for s, n := range canonicalNames {
		exact[n] = s
	}
	for n, s := range nameAliases {
		exact[n] = s
	}
	for n, s := range latin1Names {
		exact[n] = s
	}
	folded = make(map[string]Symbol, len(exact))
	for n, s := range exact {
		l := strings.ToLower(n)
		if prev, ok := folded[l]; ok && prev != s {
			folded[l] = None
			continue
		}
		folded[l] = s
	}
	for l, s := range folded {
		if s == None {
			delete(folded, l)
		}
	}
	return exact, folded
}

// String returns a human-readable name for the symbol. Printable
// symbols render as their character, named symbols as their X11
// spelling, everything else as hex.
func (s Symbol) String() string {
	if s == None {
		return "NoSymbol"
	}
	if name, ok := canonicalNames[s]; ok {
		return name
	}
	if r := s.Rune(); r != 0 && unicode.IsPrint(r) && (s < 0xff00 || s.IsUnicode()) {
		return string(r)
	}
	if s.IsUnicode() {
		return fmt.Sprintf("U+%04X", uint32(s&^unicodeFlag))
	}
	return fmt.Sprintf("0x%04x", uint32(s))
}

// MarshalText encodes the symbol as its textual name.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a symbol from any form ParseName accepts.
func (s *Symbol) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseName resolves a symbol from its textual form: a single
// character, an X11 keysym name (case-insensitive), a "U+XXXX"
// codepoint, or a "0x" hex keysym value.
func ParseName(name string) (Symbol, error) {
	if name == "" {
		return None, fmt.Errorf("%w: empty name", ErrUnknownName)
	}
	switch name {
	case "NoSymbol", "VoidSymbol", "none":
		return None, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if s := FromRune(r); s != None {
			return s, nil
		}
		return None, fmt.Errorf("%w %q", ErrUnknownName, name)
	}
	if s, ok := exactNames[name]; ok {
		return s, nil
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "u+") {
		cp, err := strconv.ParseUint(lower[2:], 16, 32)
		if err != nil || !utf8.ValidRune(rune(cp)) {
			return None, fmt.Errorf("%w %q", ErrUnknownName, name)
		}
		if s := FromRune(rune(cp)); s != None {
			return s, nil
		}
		return None, fmt.Errorf("%w %q", ErrUnknownName, name)
	}
	if strings.HasPrefix(lower, "0x") {
		v, err := strconv.ParseUint(lower[2:], 16, 32)
		if err != nil {
			return None, fmt.Errorf("%w %q", ErrUnknownName, name)
		}
		return Symbol(v), nil
	}
	if s, ok := foldedNames[lower]; ok {
		return s, nil
	}
	return None, fmt.Errorf("%w %q", ErrUnknownName, name)
}
