package source

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/dshills/keyloom/internal/input"
	"github.com/dshills/keyloom/internal/input/key"
	"github.com/dshills/keyloom/internal/input/keymap"
)

func usLayout(t *testing.T) *keymap.Layout {
	t.Helper()
	l := keymap.NewCompiler().Builtin()
	t.Cleanup(l.Release)
	return l
}

func modBitOf(t *testing.T, l *keymap.Layout, name string) keymap.Mods {
	t.Helper()
	i, ok := l.ModifierIndex(name)
	if !ok {
		t.Fatalf("layout %q has no modifier %q", l.Name(), name)
	}
	return keymap.Bit(i)
}

func pressRelease(kc uint32, mods keymap.Mods) []input.Transition {
	press := input.Transition{Keycode: kc, Action: key.ActionPress, Depressed: mods}
	release := press
	release.Action = key.ActionRelease
	return []input.Transition{press, release}
}

func TestSynthesizeTransitions(t *testing.T) {
	layout := usLayout(t)
	s := newSynthesizer(layout)
	shift := modBitOf(t, layout, "Shift")
	control := modBitOf(t, layout, "Control")
	alt := modBitOf(t, layout, "Mod1")

	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want []input.Transition
	}{
		{"plain rune", tcell.KeyRune, 'a', 0, pressRelease(38, 0)},
		{"shifted rune carries shift", tcell.KeyRune, 'A', 0, pressRelease(38, shift)},
		{"space", tcell.KeyRune, ' ', 0, pressRelease(65, 0)},
		{"digit", tcell.KeyRune, '7', 0, pressRelease(16, 0)},
		{"shifted punctuation", tcell.KeyRune, '?', 0, pressRelease(61, shift)},
		{"enter", tcell.KeyEnter, '\r', 0, pressRelease(36, 0)},
		{"tab byte is tab, not ctrl+i", tcell.KeyTab, '\t', 0, pressRelease(23, 0)},
		{"backtab lands on shift level", tcell.KeyBacktab, 0, tcell.ModShift, pressRelease(23, shift)},
		{"escape", tcell.KeyEscape, 0, 0, pressRelease(9, 0)},
		{"arrow", tcell.KeyUp, 0, 0, pressRelease(111, 0)},
		{"function key", tcell.KeyF11, 0, 0, pressRelease(95, 0)},
		{"control chord", tcell.KeyCtrlT, 't', tcell.ModCtrl, pressRelease(28, control)},
		{"alt rune", tcell.KeyRune, 'x', tcell.ModAlt, pressRelease(53, alt)},
		{"rune off the layout", tcell.KeyRune, 'Ф', 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := s.transitions(tt.key, tt.r, tt.mod)
			if quit {
				t.Fatal("transitions reported quit")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("transitions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSynthesizeQuitChords(t *testing.T) {
	s := newSynthesizer(usLayout(t))
	for _, k := range []tcell.Key{tcell.KeyCtrlC, tcell.KeyCtrlD} {
		if _, quit := s.transitions(k, 0, tcell.ModCtrl); !quit {
			t.Errorf("key %v did not quit", k)
		}
	}
}

func TestFormatEvent(t *testing.T) {
	ev := key.Event{Key: key.KeyA, Action: key.ActionPress, Text: "你好"}
	got := FormatEvent(ev)
	if !strings.Contains(got, "(2 graphemes, 4 cells)") {
		t.Errorf("FormatEvent = %q, want grapheme and cell counts", got)
	}

	bare := key.Event{Key: key.KeyEnter, Action: key.ActionPress}
	if got := FormatEvent(bare); strings.Contains(got, "graphemes") {
		t.Errorf("FormatEvent = %q, want no counts without text", got)
	}
}
