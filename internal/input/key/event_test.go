package key

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/keyloom/internal/input/keysym"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{
			"plain letter",
			Event{Key: KeyA, Symbol: 0x61, Action: ActionPress, Text: "a"},
			`press A "a"`,
		},
		{
			"shifted letter",
			Event{Key: KeyA, Symbol: 0x41, Action: ActionPress, Mods: ModShift, Text: "A"},
			`press A [Shift] "A"`,
		},
		{
			"release without text",
			Event{Key: KeyEnter, Symbol: keysym.Return, Action: ActionRelease},
			"release Enter",
		},
		{
			"symbol only",
			Event{Symbol: keysym.DeadAcute, Action: ActionPress},
			"press dead_acute",
		},
		{
			"fallback resolution",
			Event{Key: KeyQ, Symbol: 0x71, Action: ActionPress, Text: "q", Fallback: true},
			`press Q "q" (fallback)`,
		},
		{
			"ime commit",
			Event{Action: ActionPress, Text: "é", IME: true},
			`press None "é" (ime)`,
		},
		{
			"preedit clear",
			Event{Action: ActionPress, IME: true, Preedit: true},
			"press None (preedit)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEventJSONRoundTrip(t *testing.T) {
	events := []Event{
		{Key: KeyA, Symbol: 0x41, Action: ActionPress, Mods: ModShift, Text: "A"},
		{Key: KeyEnter, Symbol: keysym.Return, Action: ActionRelease},
		{Symbol: keysym.DeadGrave, Action: ActionRepeat},
		{Action: ActionPress, Text: "ñ", IME: true},
		{Key: KeyQ, Symbol: 0x71, Action: ActionPress, Text: "q", Fallback: true},
	}
	for _, ev := range events {
		raw, err := json.Marshal(ev)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", ev, err)
		}
		var back Event
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", raw, err)
		}
		if diff := cmp.Diff(ev, back); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestEventJSONShape(t *testing.T) {
	ev := Event{Key: KeyA, Symbol: 0x41, Action: ActionPress, Mods: ModShift | ModControl, Text: "A"}
	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := map[string]any{
		"key":    "A",
		"symbol": "A",
		"action": "press",
		"mods":   "Shift+Control",
		"text":   "A",
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("JSON shape mismatch (-want +got):\n%s", diff)
	}
}

func TestEventPredicates(t *testing.T) {
	text := Event{Key: KeyA, Action: ActionPress, Text: "a"}
	if !text.IsText() {
		t.Error("IsText() = false for committed text")
	}
	preedit := Event{Action: ActionPress, Text: "n", IME: true, Preedit: true}
	if preedit.IsText() {
		t.Error("IsText() = true for pre-edit text")
	}
	modified := Event{Key: KeyS, Action: ActionPress, Mods: ModControl}
	if !modified.IsModified() {
		t.Error("IsModified() = false with Control held")
	}
	locksOnly := Event{Key: KeyS, Action: ActionPress, Mods: ModCapsLock | ModNumLock}
	if locksOnly.IsModified() {
		t.Error("IsModified() = true with only lock bits")
	}
}
