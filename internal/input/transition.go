package input

import (
	"github.com/dshills/keyloom/internal/input/key"
	"github.com/dshills/keyloom/internal/input/keymap"
)

// Transition is one raw hardware key change as delivered by the
// platform dispatcher: the keycode, what happened to it, and the full
// raw modifier and group state at that moment. The pipeline never
// tracks modifier state itself; every transition restates it.
type Transition struct {
	Keycode uint32     `json:"keycode"`
	Action  key.Action `json:"action"`

	Depressed keymap.Mods `json:"depressed,omitempty"`
	Latched   keymap.Mods `json:"latched,omitempty"`
	Locked    keymap.Mods `json:"locked,omitempty"`

	BaseGroup    int32 `json:"baseGroup,omitempty"`
	LatchedGroup int32 `json:"latchedGroup,omitempty"`
	LockedGroup  int32 `json:"lockedGroup,omitempty"`
}

// Mods returns the effective raw modifier mask of the transition.
func (t Transition) Mods() keymap.Mods {
	return t.Depressed | t.Latched | t.Locked
}
