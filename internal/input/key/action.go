package key

import "fmt"

// Action describes what happened to a key.
type Action uint8

const (
	// ActionPress is the initial depression of a key.
	ActionPress Action = iota

	// ActionRelease is the key coming back up.
	ActionRelease

	// ActionRepeat is an auto-generated repeat of a held key.
	ActionRepeat
)

// String returns the lowercase action name.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// MarshalText encodes the action as its name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action from its name.
func (a *Action) UnmarshalText(text []byte) error {
	switch string(text) {
	case "press", "":
		*a = ActionPress
	case "release":
		*a = ActionRelease
	case "repeat":
		*a = ActionRepeat
	default:
		return fmt.Errorf("unknown key action %q", string(text))
	}
	return nil
}
