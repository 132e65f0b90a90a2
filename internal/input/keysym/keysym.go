// Package keysym defines the symbol vocabulary produced by keyboard
// layouts: X11 keysym values, their Unicode projection, and the
// classification predicates the resolution pipeline depends on.
package keysym

import "unicode/utf8"

// Symbol is a layout-produced keyboard symbol in the X11 keysym
// numeric space. Printable Latin-1 symbols equal their codepoint,
// other Unicode codepoints are flagged with the 0x01000000 offset.
type Symbol uint32

// None is the absent symbol (NoSymbol).
const None Symbol = 0

// unicodeFlag marks keysyms that directly encode a Unicode codepoint.
const unicodeFlag Symbol = 0x01000000

const (
	latin1PrintLo Symbol = 0x0020
	latin1PrintHi Symbol = 0x007e
	latin1ExtLo   Symbol = 0x00a0
	latin1ExtHi   Symbol = 0x00ff
)

const (
	// TTY function keys
	Backspace  Symbol = 0xff08
	Tab        Symbol = 0xff09
	Linefeed   Symbol = 0xff0a
	Clear      Symbol = 0xff0b
	Return     Symbol = 0xff0d
	Pause      Symbol = 0xff13
	ScrollLock Symbol = 0xff14
	SysReq     Symbol = 0xff15
	Escape     Symbol = 0xff1b
	Delete     Symbol = 0xffff

	// International and multi-key input
	MultiKey   Symbol = 0xff20
	Codeinput  Symbol = 0xff37
	ModeSwitch Symbol = 0xff7e

	// Cursor control and motion
	Home     Symbol = 0xff50
	Left     Symbol = 0xff51
	Up       Symbol = 0xff52
	Right    Symbol = 0xff53
	Down     Symbol = 0xff54
	PageUp   Symbol = 0xff55
	PageDown Symbol = 0xff56
	End      Symbol = 0xff57
	Begin    Symbol = 0xff58

	// Misc functions
	Select  Symbol = 0xff60
	Print   Symbol = 0xff61
	Execute Symbol = 0xff62
	Insert  Symbol = 0xff63
	Undo    Symbol = 0xff65
	Redo    Symbol = 0xff66
	Menu    Symbol = 0xff67
	Find    Symbol = 0xff68
	Cancel  Symbol = 0xff69
	Help    Symbol = 0xff6a
	Break   Symbol = 0xff6b
	NumLock Symbol = 0xff7f

	// Keypad
	KPSpace     Symbol = 0xff80
	KPTab       Symbol = 0xff89
	KPEnter     Symbol = 0xff8d
	KPHome      Symbol = 0xff95
	KPLeft      Symbol = 0xff96
	KPUp        Symbol = 0xff97
	KPRight     Symbol = 0xff98
	KPDown      Symbol = 0xff99
	KPPageUp    Symbol = 0xff9a
	KPPageDown  Symbol = 0xff9b
	KPEnd       Symbol = 0xff9c
	KPBegin     Symbol = 0xff9d
	KPInsert    Symbol = 0xff9e
	KPDelete    Symbol = 0xff9f
	KPMultiply  Symbol = 0xffaa
	KPAdd       Symbol = 0xffab
	KPSeparator Symbol = 0xffac
	KPSubtract  Symbol = 0xffad
	KPDecimal   Symbol = 0xffae
	KPDivide    Symbol = 0xffaf
	KP0         Symbol = 0xffb0
	KP1         Symbol = 0xffb1
	KP2         Symbol = 0xffb2
	KP3         Symbol = 0xffb3
	KP4         Symbol = 0xffb4
	KP5         Symbol = 0xffb5
	KP6         Symbol = 0xffb6
	KP7         Symbol = 0xffb7
	KP8         Symbol = 0xffb8
	KP9         Symbol = 0xffb9
	KPEqual     Symbol = 0xffbd

	// Function keys
	F1  Symbol = 0xffbe
	F2  Symbol = 0xffbf
	F3  Symbol = 0xffc0
	F4  Symbol = 0xffc1
	F5  Symbol = 0xffc2
	F6  Symbol = 0xffc3
	F7  Symbol = 0xffc4
	F8  Symbol = 0xffc5
	F9  Symbol = 0xffc6
	F10 Symbol = 0xffc7
	F11 Symbol = 0xffc8
	F12 Symbol = 0xffc9
	F13 Symbol = 0xffca
	F14 Symbol = 0xffcb
	F15 Symbol = 0xffcc
	F16 Symbol = 0xffcd
	F17 Symbol = 0xffce
	F18 Symbol = 0xffcf
	F19 Symbol = 0xffd0
	F20 Symbol = 0xffd1
	F21 Symbol = 0xffd2
	F22 Symbol = 0xffd3
	F23 Symbol = 0xffd4
	F24 Symbol = 0xffd5

	// Modifiers
	ShiftL    Symbol = 0xffe1
	ShiftR    Symbol = 0xffe2
	ControlL  Symbol = 0xffe3
	ControlR  Symbol = 0xffe4
	CapsLock  Symbol = 0xffe5
	ShiftLock Symbol = 0xffe6
	MetaL     Symbol = 0xffe7
	MetaR     Symbol = 0xffe8
	AltL      Symbol = 0xffe9
	AltR      Symbol = 0xffea
	SuperL    Symbol = 0xffeb
	SuperR    Symbol = 0xffec
	HyperL    Symbol = 0xffed
	HyperR    Symbol = 0xffee
)

const (
	// Extended keyboard function keysyms
	ISOLock           Symbol = 0xfe01
	ISOLevel3Shift    Symbol = 0xfe03
	ISOLevel3Latch    Symbol = 0xfe04
	ISOLevel3Lock     Symbol = 0xfe05
	ISOGroupLatch     Symbol = 0xfe06
	ISOGroupLock      Symbol = 0xfe07
	ISONextGroup      Symbol = 0xfe08
	ISONextGroupLock  Symbol = 0xfe09
	ISOPrevGroup      Symbol = 0xfe0a
	ISOPrevGroupLock  Symbol = 0xfe0b
	ISOFirstGroup     Symbol = 0xfe0c
	ISOFirstGroupLock Symbol = 0xfe0d
	ISOLastGroup      Symbol = 0xfe0e
	ISOLastGroupLock  Symbol = 0xfe0f
	ISOLevel5Shift    Symbol = 0xfe11
	ISOLevel5Latch    Symbol = 0xfe12
	ISOLevel5Lock     Symbol = 0xfe13
	ISOLeftTab        Symbol = 0xfe20

	// Dead keys
	DeadGrave           Symbol = 0xfe50
	DeadAcute           Symbol = 0xfe51
	DeadCircumflex      Symbol = 0xfe52
	DeadTilde           Symbol = 0xfe53
	DeadMacron          Symbol = 0xfe54
	DeadBreve           Symbol = 0xfe55
	DeadAbovedot        Symbol = 0xfe56
	DeadDiaeresis       Symbol = 0xfe57
	DeadAbovering       Symbol = 0xfe58
	DeadDoubleacute     Symbol = 0xfe59
	DeadCaron           Symbol = 0xfe5a
	DeadCedilla         Symbol = 0xfe5b
	DeadOgonek          Symbol = 0xfe5c
	DeadIota            Symbol = 0xfe5d
	DeadVoicedSound     Symbol = 0xfe5e
	DeadSemivoicedSound Symbol = 0xfe5f
	DeadBelowdot        Symbol = 0xfe60
	DeadHook            Symbol = 0xfe61
	DeadHorn            Symbol = 0xfe62
	DeadStroke          Symbol = 0xfe63
	DeadCurrency        Symbol = 0xfe6f
)

// FromRune returns the keysym encoding a printable rune. Printable
// Latin-1 runes map to their codepoint, everything else above U+00FF
// carries the Unicode flag. Control runes have no direct keysym and
// yield None.
func FromRune(r rune) Symbol {
	s := Symbol(r)
	switch {
	case s >= latin1PrintLo && s <= latin1PrintHi:
		return s
	case s >= latin1ExtLo && s <= latin1ExtHi:
		return s
	case r > 0xff && utf8.ValidRune(r):
		return unicodeFlag | s
	default:
		return None
	}
}

// Rune returns the Unicode interpretation of the symbol, or 0 when
// the symbol does not stand for a character. Keypad and TTY function
// keysyms project onto their ASCII equivalents.
func (s Symbol) Rune() rune {
	switch {
	case s >= latin1PrintLo && s <= latin1PrintHi:
		return rune(s)
	case s >= latin1ExtLo && s <= latin1ExtHi:
		return rune(s)
	case s&^0x00ffffff == unicodeFlag:
		r := rune(s &^ unicodeFlag)
		if r > 0xff && utf8.ValidRune(r) {
			return r
		}
		return 0
	case s >= KP0 && s <= KP9:
		return '0' + rune(s-KP0)
	}
	switch s {
	case Backspace:
		return '\b'
	case Tab, KPTab:
		return '\t'
	case Linefeed:
		return '\n'
	case Return, KPEnter:
		return '\r'
	case Escape:
		return 0x1b
	case Delete:
		return 0x7f
	case KPSpace:
		return ' '
	case KPMultiply:
		return '*'
	case KPAdd:
		return '+'
	case KPSeparator:
		return ','
	case KPSubtract:
		return '-'
	case KPDecimal:
		return '.'
	case KPDivide:
		return '/'
	case KPEqual:
		return '='
	}
	return 0
}

// IsDead reports whether the symbol is a dead key (a combining
// accent that starts or extends a compose sequence).
func (s Symbol) IsDead() bool {
	return s >= DeadGrave && s <= 0xfe93
}

// IsModifier reports whether pressing the symbol changes modifier
// state rather than producing input.
func (s Symbol) IsModifier() bool {
	if s >= ShiftL && s <= HyperR {
		return true
	}
	switch s {
	case ISOLevel3Shift, ISOLevel3Latch, ISOLevel3Lock,
		ISOLevel5Shift, ISOLevel5Latch, ISOLevel5Lock:
		return true
	}
	return false
}

// IsGroupSwitch reports whether the symbol selects a layout group.
// Events carrying these are internal layout plumbing, not input.
func (s Symbol) IsGroupSwitch() bool {
	if s >= ISOGroupLatch && s <= ISOLastGroupLock {
		return true
	}
	return s == ModeSwitch
}

// IsKeypad reports whether the symbol sits in the keypad block.
func (s Symbol) IsKeypad() bool {
	return s >= KPSpace && s <= KPEqual
}

// IsUnicode reports whether the symbol is a flagged Unicode keysym.
func (s Symbol) IsUnicode() bool {
	return s&^0x00ffffff == unicodeFlag
}
