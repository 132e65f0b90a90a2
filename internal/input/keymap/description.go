package keymap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Description is the on-disk JSON form of a layout before
// compilation. Field names follow the layout schema.
type Description struct {
	Name      string              `json:"name"`
	Modifiers []string            `json:"modifiers"`
	Types     map[string]TypeDesc `json:"types"`
	Keys      map[string]KeyDesc  `json:"keys"`
}

// TypeDesc describes a key type: the modifier mask it responds to,
// the combo to shift-level map, and the combos whose modifiers stay
// unconsumed.
type TypeDesc struct {
	Mask     []string            `json:"mask"`
	Map      map[string]int      `json:"map,omitempty"`
	Preserve map[string][]string `json:"preserve,omitempty"`
}

// KeyDesc describes one keycode: its symbol table per group and
// whether the key auto-repeats.
type KeyDesc struct {
	Groups []GroupDesc `json:"groups"`
	Repeat *bool       `json:"repeat,omitempty"`
}

// GroupDesc is a key's symbol table for one layout group.
type GroupDesc struct {
	Type    string      `json:"type,omitempty"`
	Symbols []LevelSyms `json:"symbols"`
}

// LevelSyms is the symbol list for one shift level. The JSON form is
// a bare string for the common single-symbol case or an array.
type LevelSyms []string

// UnmarshalJSON accepts either a string or an array of strings.
func (l *LevelSyms) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = LevelSyms{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("level symbols must be a string or an array of strings")
	}
	*l = LevelSyms(many)
	return nil
}

// MarshalJSON writes single-symbol levels back as bare strings.
func (l LevelSyms) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	return json.Marshal([]string(l))
}

// parseCombo resolves a "+"-joined modifier combo like "Shift+Lock"
// against the layout's modifier table. Empty and "None" mean no
// modifiers.
func parseCombo(combo string, index map[string]ModIndex) (Mods, error) {
	combo = strings.TrimSpace(combo)
	if combo == "" || strings.EqualFold(combo, "none") {
		return 0, nil
	}
	var mask Mods
	for _, part := range strings.Split(combo, "+") {
		part = strings.TrimSpace(part)
		i, ok := index[strings.ToLower(part)]
		if !ok {
			return 0, fmt.Errorf("modifier %q is not in the layout's modifier table", part)
		}
		mask |= Bit(i)
	}
	return mask, nil
}
