package input

import (
	"github.com/dshills/keyloom/internal/input/key"
	"github.com/dshills/keyloom/internal/input/keysym"
)

// logicalPairs lists every non-arithmetic symbol↔key binding, primary
// spellings first: when several symbols share a key, the earliest
// entry is the one LogicalSymbol answers with.
var logicalPairs = []struct {
	sym keysym.Symbol
	key key.Key
}{
	{' ', key.KeySpace},
	{'\'', key.KeyApostrophe},
	{',', key.KeyComma},
	{'-', key.KeyMinus},
	{'.', key.KeyPeriod},
	{'/', key.KeySlash},
	{';', key.KeySemicolon},
	{'=', key.KeyEqual},
	{'[', key.KeyLeftBracket},
	{'\\', key.KeyBackslash},
	{']', key.KeyRightBracket},
	{'`', key.KeyGrave},

	{keysym.Escape, key.KeyEscape},
	{keysym.Return, key.KeyEnter},
	{keysym.Tab, key.KeyTab},
	{keysym.ISOLeftTab, key.KeyTab},
	{keysym.Backspace, key.KeyBackspace},
	{keysym.Insert, key.KeyInsert},
	{keysym.Delete, key.KeyDelete},

	{keysym.Right, key.KeyRight},
	{keysym.Left, key.KeyLeft},
	{keysym.Down, key.KeyDown},
	{keysym.Up, key.KeyUp},
	{keysym.PageUp, key.KeyPageUp},
	{keysym.PageDown, key.KeyPageDown},
	{keysym.Home, key.KeyHome},
	{keysym.End, key.KeyEnd},

	{keysym.CapsLock, key.KeyCapsLock},
	{keysym.ScrollLock, key.KeyScrollLock},
	{keysym.NumLock, key.KeyNumLock},
	{keysym.Print, key.KeyPrintScreen},
	{keysym.Pause, key.KeyPause},
	{keysym.Menu, key.KeyMenu},

	{keysym.KPDecimal, key.KeyKPDecimal},
	{keysym.KPSeparator, key.KeyKPDecimal},
	{keysym.KPDivide, key.KeyKPDivide},
	{keysym.KPMultiply, key.KeyKPMultiply},
	{keysym.KPSubtract, key.KeyKPSubtract},
	{keysym.KPAdd, key.KeyKPAdd},
	{keysym.KPEnter, key.KeyKPEnter},
	{keysym.KPEqual, key.KeyKPEqual},

	// Keypad navigation projects onto the plain navigation keys.
	{keysym.KPHome, key.KeyHome},
	{keysym.KPLeft, key.KeyLeft},
	{keysym.KPUp, key.KeyUp},
	{keysym.KPRight, key.KeyRight},
	{keysym.KPDown, key.KeyDown},
	{keysym.KPPageUp, key.KeyPageUp},
	{keysym.KPPageDown, key.KeyPageDown},
	{keysym.KPEnd, key.KeyEnd},
	{keysym.KPInsert, key.KeyInsert},
	{keysym.KPDelete, key.KeyDelete},

	{keysym.ShiftL, key.KeyLeftShift},
	{keysym.ShiftR, key.KeyRightShift},
	{keysym.ControlL, key.KeyLeftControl},
	{keysym.ControlR, key.KeyRightControl},
	{keysym.AltL, key.KeyLeftAlt},
	{keysym.AltR, key.KeyRightAlt},
	{keysym.MetaL, key.KeyLeftAlt},
	{keysym.MetaR, key.KeyRightAlt},
	{keysym.SuperL, key.KeyLeftSuper},
	{keysym.SuperR, key.KeyRightSuper},
}

var logicalKeys, logicalSyms = buildLogicalTables()

func buildLogicalTables() (map[keysym.Symbol]key.Key, map[key.Key]keysym.Symbol) {
	fwd := make(map[keysym.Symbol]key.Key, len(logicalPairs))
	rev := make(map[key.Key]keysym.Symbol, len(logicalPairs))
	for _, p := range logicalPairs {
		fwd[p.sym] = p.key
		if _, ok := rev[p.key]; !ok {
			rev[p.key] = p.sym
		}
	}
	return fwd, rev
}

// LogicalKey maps a layout symbol onto its portable logical key.
// Letter, digit, function-key and keypad-digit blocks map
// arithmetically; everything else is an explicit table entry.
// Symbols with no portable identity yield KeyNone.
func LogicalKey(sym keysym.Symbol) key.Key {
	switch {
	case sym >= 'a' && sym <= 'z':
		return key.KeyA + key.Key(sym-'a')
	case sym >= 'A' && sym <= 'Z':
		return key.KeyA + key.Key(sym-'A')
	case sym >= '0' && sym <= '9':
		return key.Key0 + key.Key(sym-'0')
	case sym >= keysym.F1 && sym <= keysym.F24:
		return key.KeyF1 + key.Key(sym-keysym.F1)
	case sym >= keysym.KP0 && sym <= keysym.KP9:
		return key.KeyKP0 + key.Key(sym-keysym.KP0)
	}
	return logicalKeys[sym]
}

// LogicalSymbol is the reverse direction: the primary symbol a
// portable key stands for. Letters answer with their lowercase form.
func LogicalSymbol(k key.Key) keysym.Symbol {
	switch {
	case k >= key.KeyA && k <= key.KeyZ:
		return 'a' + keysym.Symbol(k-key.KeyA)
	case k >= key.Key0 && k <= key.Key9:
		return '0' + keysym.Symbol(k-key.Key0)
	case k >= key.KeyF1 && k <= key.KeyF24:
		return keysym.F1 + keysym.Symbol(k-key.KeyF1)
	case k >= key.KeyKP0 && k <= key.KeyKP9:
		return keysym.KP0 + keysym.Symbol(k-key.KeyKP0)
	}
	return logicalSyms[k]
}
