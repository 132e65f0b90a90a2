package keymap

import (
	"testing"

	"github.com/dshills/keyloom/internal/input/keysym"
)

func TestLayoutSymbolLookup(t *testing.T) {
	l := compileTestLayout(t)
	shift := mustMod(t, l, "Shift")
	lock := mustMod(t, l, "Lock")
	control := mustMod(t, l, "Control")

	tests := []struct {
		name    string
		keycode uint32
		group   int32
		mods    Mods
		want    keysym.Symbol
		wantOK  bool
	}{
		{"base level", 38, 0, 0, keysym.FromRune('a'), true},
		{"shift level", 38, 0, shift, keysym.FromRune('A'), true},
		{"lock level", 38, 0, lock, keysym.FromRune('A'), true},
		{"shift cancels lock", 38, 0, shift | lock, keysym.FromRune('a'), true},
		{"mods outside mask ignored", 38, 0, control, keysym.FromRune('a'), true},
		{"second group", 38, 1, 0, keysym.FromRune('ä'), true},
		{"second group shifted", 38, 1, shift, keysym.FromRune('Ä'), true},
		{"unknown keycode", 200, 0, 0, keysym.None, false},
		{"multi symbol level", 99, 0, 0, keysym.None, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.Symbol(tt.keycode, tt.group, tt.mods)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Symbol(%d, %d, %s) = %v, %v, want %v, %v",
					tt.keycode, tt.group, l.FormatMods(tt.mods), got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if syms := l.Symbols(99, 0, 0); len(syms) != 2 {
		t.Errorf("Symbols(99, 0, none) returned %d symbols, want 2", len(syms))
	}
}

func TestLayoutGroupWrap(t *testing.T) {
	l := compileTestLayout(t)

	// Key 38 declares two groups; out-of-range indices wrap onto them.
	tests := []struct {
		group int32
		want  keysym.Symbol
	}{
		{0, keysym.FromRune('a')},
		{1, keysym.FromRune('ä')},
		{2, keysym.FromRune('a')},
		{3, keysym.FromRune('ä')},
		{-1, keysym.FromRune('ä')},
		{-2, keysym.FromRune('a')},
	}
	for _, tt := range tests {
		got, ok := l.Symbol(38, tt.group, 0)
		if !ok || got != tt.want {
			t.Errorf("Symbol(38, %d, none) = %v, %v, want %v, true", tt.group, got, ok, tt.want)
		}
	}

	// Single-group keys absorb any group index.
	if got, ok := l.Symbol(36, 3, 0); !ok || got != keysym.Return {
		t.Errorf("Symbol(36, 3, none) = %v, %v, want Return, true", got, ok)
	}
	if got := l.NumGroups(38); got != 2 {
		t.Errorf("NumGroups(38) = %d, want 2", got)
	}
	if got := l.NumGroups(36); got != 1 {
		t.Errorf("NumGroups(36) = %d, want 1", got)
	}
}

func TestLayoutLevel(t *testing.T) {
	l := compileTestLayout(t)
	shift := mustMod(t, l, "Shift")
	lock := mustMod(t, l, "Lock")
	mod2 := mustMod(t, l, "Mod2")

	tests := []struct {
		name    string
		keycode uint32
		mods    Mods
		want    int
	}{
		{"alpha base", 38, 0, 0},
		{"alpha shift", 38, shift, 1},
		{"alpha lock", 38, lock, 1},
		{"alpha shift lock", 38, shift | lock, 0},
		{"keypad numlock", 87, mod2, 1},
		{"keypad shift", 87, shift, 1},
		{"keypad combo unmapped", 87, shift | mod2, 0},
		{"unknown keycode", 200, shift, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Level(tt.keycode, 0, tt.mods); got != tt.want {
				t.Errorf("Level(%d, 0, %s) = %d, want %d",
					tt.keycode, l.FormatMods(tt.mods), got, tt.want)
			}
		})
	}
}

func TestLayoutConsumedMods(t *testing.T) {
	l := compileTestLayout(t)
	shift := mustMod(t, l, "Shift")
	lock := mustMod(t, l, "Lock")
	mod2 := mustMod(t, l, "Mod2")

	tests := []struct {
		name    string
		keycode uint32
		mods    Mods
		want    Mods
	}{
		// The alpha type consumes its whole mask regardless of which
		// combo matched.
		{"alpha base", 38, 0, shift | lock},
		{"alpha shift", 38, shift, shift | lock},
		// The keypad type preserves Shift when Shift selected the
		// level, so only Mod2 counts as consumed.
		{"keypad shift preserved", 87, shift, mod2},
		{"keypad numlock", 87, mod2, shift | mod2},
		// One-level default type has an empty mask.
		{"one level", 36, shift, 0},
		{"unknown keycode", 200, shift, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.ConsumedMods(tt.keycode, 0, tt.mods); got != tt.want {
				t.Errorf("ConsumedMods(%d, 0, %s) = %s, want %s",
					tt.keycode, l.FormatMods(tt.mods), l.FormatMods(got), l.FormatMods(tt.want))
			}
		})
	}
}

func TestLayoutReverseLookup(t *testing.T) {
	l := compileTestLayout(t)
	shift := mustMod(t, l, "Shift")

	tests := []struct {
		name string
		sym  keysym.Symbol
		want KeyPosition
	}{
		{"base level", keysym.FromRune('a'), KeyPosition{Keycode: 38, Group: 0, Level: 0, Mods: 0}},
		{"shift level", keysym.FromRune('A'), KeyPosition{Keycode: 38, Group: 0, Level: 1, Mods: shift}},
		{"second group", keysym.FromRune('ä'), KeyPosition{Keycode: 38, Group: 1, Level: 0, Mods: 0}},
		{"keypad base", keysym.KPEnd, KeyPosition{Keycode: 87, Group: 0, Level: 0, Mods: 0}},
		{"keypad level", keysym.KP1, KeyPosition{Keycode: 87, Group: 0, Level: 1, Mods: shift}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := l.ReverseLookup(tt.sym)
			if !ok || pos != tt.want {
				t.Errorf("ReverseLookup(%v) = %+v, %v, want %+v, true", tt.sym, pos, ok, tt.want)
			}
		})
	}

	if _, ok := l.ReverseLookup(keysym.FromRune('€')); ok {
		t.Error("ReverseLookup('€') found a position, want none")
	}
}

func TestLayoutRelease(t *testing.T) {
	l := compileTestLayout(t)
	shift := mustMod(t, l, "Shift")

	if l.Released() {
		t.Fatal("Released() = true before Release()")
	}
	l.Release()
	if !l.Released() {
		t.Fatal("Released() = false after Release()")
	}

	if syms := l.Symbols(38, 0, 0); syms != nil {
		t.Errorf("Symbols() after release = %v, want nil", syms)
	}
	if _, ok := l.Symbol(38, 0, 0); ok {
		t.Error("Symbol() after release returned ok")
	}
	if got := l.Level(38, 0, shift); got != 0 {
		t.Errorf("Level() after release = %d, want 0", got)
	}
	if got := l.ConsumedMods(38, 0, shift); got != 0 {
		t.Errorf("ConsumedMods() after release = %s, want None", l.FormatMods(got))
	}
	if l.Repeats(38) {
		t.Error("Repeats() after release = true, want false")
	}
	if _, ok := l.ReverseLookup(keysym.FromRune('a')); ok {
		t.Error("ReverseLookup() after release returned ok")
	}
	if got := l.NumGroups(38); got != 0 {
		t.Errorf("NumGroups() after release = %d, want 0", got)
	}
}

func TestLayoutFormatMods(t *testing.T) {
	l := compileTestLayout(t)
	shift := mustMod(t, l, "Shift")
	hyper := mustMod(t, l, "Hyper")

	tests := []struct {
		mods Mods
		want string
	}{
		{0, "None"},
		{shift, "Shift"},
		{shift | hyper, "Shift+Hyper"},
	}
	for _, tt := range tests {
		if got := l.FormatMods(tt.mods); got != tt.want {
			t.Errorf("FormatMods(%#x) = %q, want %q", uint32(tt.mods), got, tt.want)
		}
	}
}

func TestLayoutModifierNames(t *testing.T) {
	l := compileTestLayout(t)

	if got := l.ModifierName(0); got != "Shift" {
		t.Errorf("ModifierName(0) = %q, want %q", got, "Shift")
	}
	if got := l.ModifierName(40); got != "" {
		t.Errorf("ModifierName(40) = %q, want empty", got)
	}
	if _, ok := l.ModifierIndex("SHIFT"); !ok {
		t.Error("ModifierIndex() is not case-insensitive")
	}
	if _, ok := l.ModifierIndex("Mod9"); ok {
		t.Error("ModifierIndex(Mod9) found an index, want none")
	}
}
