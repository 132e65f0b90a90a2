package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected string
	}{
		{"letter", KeyA, "A"},
		{"last letter", KeyZ, "Z"},
		{"digit", Key0, "0"},
		{"last digit", Key9, "9"},
		{"function key", KeyF1, "F1"},
		{"high function key", KeyF24, "F24"},
		{"keypad digit", KeyKP7, "KP7"},
		{"keypad operator", KeyKPAdd, "KP+"},
		{"punctuation", KeySemicolon, ";"},
		{"named", KeyEscape, "Escape"},
		{"modifier", KeyLeftShift, "LeftShift"},
		{"none", KeyNone, "None"},
		{"out of range", Key(9999), "Key(9999)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Key
	}{
		{"letter lowercase", "a", KeyA},
		{"letter uppercase", "Q", KeyQ},
		{"digit", "5", Key5},
		{"function key", "f12", KeyF12},
		{"named", "Escape", KeyEscape},
		{"alias", "esc", KeyEscape},
		{"return alias", "return", KeyEnter},
		{"keypad", "kp3", KeyKP3},
		{"punctuation name", "semicolon", KeySemicolon},
		{"punctuation literal", ";", KeySemicolon},
		{"modifier", "leftcontrol", KeyLeftControl},
		{"whitespace trimmed", "  Tab  ", KeyTab},
		{"unknown", "warpcore", KeyNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFromName(tt.input); got != tt.expected {
				t.Errorf("KeyFromName(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKeyRanges(t *testing.T) {
	if got := KeyA + Key('z'-'a'); got != KeyZ {
		t.Errorf("letter range is not contiguous: KeyA+25 = %v", got)
	}
	if got := Key0 + Key('9'-'0'); got != Key9 {
		t.Errorf("digit range is not contiguous: Key0+9 = %v", got)
	}
	if got := KeyF1 + 23; got != KeyF24 {
		t.Errorf("function key range is not contiguous: KeyF1+23 = %v", got)
	}
	if got := KeyKP0 + 9; got != KeyKP9 {
		t.Errorf("keypad range is not contiguous: KeyKP0+9 = %v", got)
	}
}

func TestKeyPredicates(t *testing.T) {
	tests := []struct {
		name       string
		key        Key
		printable  bool
		function   bool
		arrow      bool
		navigation bool
		keypad     bool
		modifier   bool
	}{
		{"letter", KeyG, true, false, false, false, false, false},
		{"space", KeySpace, true, false, false, false, false, false},
		{"f5", KeyF5, false, true, false, false, false, false},
		{"up", KeyUp, false, false, true, true, false, false},
		{"home", KeyHome, false, false, false, true, false, false},
		{"kp enter", KeyKPEnter, false, false, false, false, true, false},
		{"right super", KeyRightSuper, false, false, false, false, false, true},
		{"escape", KeyEscape, false, false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.IsPrintable(); got != tt.printable {
				t.Errorf("IsPrintable() = %v, want %v", got, tt.printable)
			}
			if got := tt.key.IsFunctionKey(); got != tt.function {
				t.Errorf("IsFunctionKey() = %v, want %v", got, tt.function)
			}
			if got := tt.key.IsArrowKey(); got != tt.arrow {
				t.Errorf("IsArrowKey() = %v, want %v", got, tt.arrow)
			}
			if got := tt.key.IsNavigationKey(); got != tt.navigation {
				t.Errorf("IsNavigationKey() = %v, want %v", got, tt.navigation)
			}
			if got := tt.key.IsKeypadKey(); got != tt.keypad {
				t.Errorf("IsKeypadKey() = %v, want %v", got, tt.keypad)
			}
			if got := tt.key.IsModifierKey(); got != tt.modifier {
				t.Errorf("IsModifierKey() = %v, want %v", got, tt.modifier)
			}
		})
	}
}

func TestKeyTextRoundTrip(t *testing.T) {
	for k := KeyNone; k <= KeyRightSuper; k++ {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", k, err)
		}
		var back Key
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if back != k {
			t.Errorf("round trip %v -> %q -> %v", k, text, back)
		}
	}
}
