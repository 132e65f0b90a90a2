package keystate

import (
	"errors"
	"testing"

	"github.com/dshills/keyloom/internal/input/keymap"
	"github.com/dshills/keyloom/internal/input/keysym"
)

// stateTestLayout binds enough of a US-like layout to exercise level
// selection, the control transform and group handling.
const stateTestLayout = `{
	"name": "state-test",
	"modifiers": ["Shift", "Lock", "Control", "Mod1", "Mod2", "Hyper"],
	"types": {
		"alpha": {
			"mask": ["Shift", "Lock"],
			"map": {"Shift": 1, "Lock": 1, "Shift+Lock": 0}
		}
	},
	"keys": {
		"38": {"groups": [
			{"type": "alpha", "symbols": ["a", "A"]},
			{"type": "alpha", "symbols": ["adiaeresis", "Adiaeresis"]}
		]},
		"10": {"groups": [{"symbols": ["1", "exclam"]}]},
		"36": {"groups": [{"symbols": ["Return"]}]},
		"65": {"groups": [{"symbols": ["space"]}]},
		"61": {"groups": [{"symbols": ["slash", "question"]}]}
	}
}`

func compileStateLayout(t *testing.T) *keymap.Layout {
	t.Helper()
	l, err := keymap.NewCompiler().CompileBytes([]byte(stateTestLayout))
	if err != nil {
		t.Fatalf("CompileBytes() error = %v", err)
	}
	return l
}

func layoutMod(t *testing.T, l *keymap.Layout, name string) keymap.Mods {
	t.Helper()
	i, ok := l.ModifierIndex(name)
	if !ok {
		t.Fatalf("ModifierIndex(%q) not found", name)
	}
	return keymap.Bit(i)
}

func TestNewState(t *testing.T) {
	l := compileStateLayout(t)
	s, err := New(l)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.Generation() != l.Generation() {
		t.Errorf("Generation() = %d, want %d", s.Generation(), l.Generation())
	}
	if s.Layout() != l {
		t.Error("Layout() did not return the backing layout")
	}
}

func TestNewStateRejectsBadLayout(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, keymap.ErrIncompatibleLayout) {
		t.Errorf("New(nil) error = %v, want ErrIncompatibleLayout", err)
	}
	l := compileStateLayout(t)
	l.Release()
	if _, err := New(l); !errors.Is(err, keymap.ErrIncompatibleLayout) {
		t.Errorf("New(released) error = %v, want ErrIncompatibleLayout", err)
	}
}

func TestStateUpdateAndLookup(t *testing.T) {
	l := compileStateLayout(t)
	shift := layoutMod(t, l, "Shift")
	s, err := New(l)
	if err != nil {
		t.Fatal(err)
	}

	if got, ok := s.Symbol(38); !ok || got != keysym.FromRune('a') {
		t.Errorf("Symbol(38) = %v, %v, want a, true", got, ok)
	}

	s.Update(shift, 0, 0, 0, 0, 0)
	if got, ok := s.Symbol(38); !ok || got != keysym.FromRune('A') {
		t.Errorf("Symbol(38) with Shift = %v, %v, want A, true", got, ok)
	}
	if got := s.Level(38); got != 1 {
		t.Errorf("Level(38) with Shift = %d, want 1", got)
	}
	if got := s.ConsumedMods(38); got != shift|layoutMod(t, l, "Lock") {
		t.Errorf("ConsumedMods(38) = %v, want the alpha mask", got)
	}

	// Group selectors move lookups to the second group.
	s.Update(0, 0, 0, 1, 0, 0)
	if got, ok := s.Symbol(38); !ok || got != keysym.FromRune('ä') {
		t.Errorf("Symbol(38) in group 1 = %v, %v, want ä, true", got, ok)
	}
	// Split group selectors sum.
	s.Update(0, 0, 0, 0, 1, 2)
	if got := s.Group(); got != 3 {
		t.Errorf("Group() = %d, want 3", got)
	}
}

func TestStateUpdateIdempotent(t *testing.T) {
	l := compileStateLayout(t)
	shift := layoutMod(t, l, "Shift")
	s, err := New(l)
	if err != nil {
		t.Fatal(err)
	}

	s.Update(shift, 0, 0, 0, 0, 0)
	first, firstOK := s.Symbol(38)
	firstMods := s.Mods()

	s.Update(shift, 0, 0, 0, 0, 0)
	second, secondOK := s.Symbol(38)

	if first != second || firstOK != secondOK || s.Mods() != firstMods {
		t.Errorf("repeated Update() changed results: %v/%v vs %v/%v", first, firstOK, second, secondOK)
	}
}

func TestStateText(t *testing.T) {
	l := compileStateLayout(t)
	shift := layoutMod(t, l, "Shift")
	control := layoutMod(t, l, "Control")

	tests := []struct {
		name    string
		mods    keymap.Mods
		keycode uint32
		want    string
	}{
		{"plain letter", 0, 38, "a"},
		{"shifted letter", shift, 38, "A"},
		{"digit", 0, 10, "1"},
		{"return control char", 0, 36, "\r"},
		{"control letter", control, 38, "\x01"},
		{"control shifted letter", control | shift, 38, "\x01"},
		{"control question", control | shift, 61, "\x7f"},
		{"control space", control, 65, ""},
		{"unbound keycode", 0, 200, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(l)
			if err != nil {
				t.Fatal(err)
			}
			s.Update(tt.mods, 0, 0, 0, 0, 0)
			if got := s.Text(tt.keycode); got != tt.want {
				t.Errorf("Text(%d) = %q, want %q", tt.keycode, got, tt.want)
			}
		})
	}
}

func TestStateRefusesAfterLayoutRelease(t *testing.T) {
	l := compileStateLayout(t)
	s, err := New(l)
	if err != nil {
		t.Fatal(err)
	}
	l.Release()

	if syms := s.Symbols(38); syms != nil {
		t.Errorf("Symbols() after layout release = %v, want nil", syms)
	}
	if _, ok := s.Symbol(38); ok {
		t.Error("Symbol() after layout release returned ok")
	}
	if got := s.Text(38); got != "" {
		t.Errorf("Text() after layout release = %q, want empty", got)
	}
	if got := s.ConsumedMods(38); got != 0 {
		t.Errorf("ConsumedMods() after layout release = %v, want 0", got)
	}
}

func TestStateRelease(t *testing.T) {
	l := compileStateLayout(t)
	s, err := New(l)
	if err != nil {
		t.Fatal(err)
	}
	if s.Released() {
		t.Fatal("Released() = true before Release()")
	}
	s.Release()
	if !s.Released() {
		t.Fatal("Released() = false after Release()")
	}
	if _, ok := s.Symbol(38); ok {
		t.Error("Symbol() after Release() returned ok")
	}
}

func TestControlRune(t *testing.T) {
	tests := []struct {
		in   rune
		want rune
	}{
		{'a', 0x01},
		{'z', 0x1a},
		{'A', 0x01},
		{'@', 0x00},
		{'[', 0x1b},
		{'_', 0x1f},
		{'?', 0x7f},
		{' ', 0x00},
		{'1', '1'},
		{'é', 'é'},
	}
	for _, tt := range tests {
		if got := controlRune(tt.in); got != tt.want {
			t.Errorf("controlRune(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}
