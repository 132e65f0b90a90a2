package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// Settings is a read-only snapshot of the system keyboard settings
// file. The file is JSON owned by whatever manages system keyboard
// preferences; keyloom only reads it. Fields are extracted lazily with
// gjson, so keys this build does not know about never break loading.
type Settings struct {
	path string
	raw  []byte
}

// DefaultSettingsPath returns the standard snapshot location, next to
// the configuration file.
func DefaultSettingsPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keyloom", "settings.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "keyloom", "settings.json")
}

// LoadSettings reads the snapshot at path. An empty path tries
// DefaultSettingsPath and yields an empty snapshot when no file exists
// there; an explicit path must exist.
func LoadSettings(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultSettingsPath()
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return &Settings{path: path}, nil
	default:
		return nil, fmt.Errorf("loading settings %s: %w", path, err)
	}

	s, err := ParseSettings(raw)
	if err != nil {
		return nil, fmt.Errorf("loading settings %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// ParseSettings wraps a raw snapshot after checking that it is valid
// JSON.
func ParseSettings(raw []byte) (*Settings, error) {
	if len(raw) > 0 && !gjson.ValidBytes(raw) {
		return nil, ErrInvalidSettings
	}
	return &Settings{raw: raw}, nil
}

// Path reports where the snapshot was read from, or where it was
// looked for when nothing was found.
func (s *Settings) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// LayoutPath returns the description file for the active layout, or
// "" when the snapshot does not name one.
func (s *Settings) LayoutPath() string {
	return s.get("keyboard.layout").String()
}

// FallbackPath returns the description file for the fallback layout.
// Empty means the embedded builtin layout serves.
func (s *Settings) FallbackPath() string {
	return s.get("keyboard.fallback").String()
}

// Options returns the free-form keyboard option strings in snapshot
// order, or nil when none are set.
func (s *Settings) Options() []string {
	res := s.get("keyboard.options")
	if !res.IsArray() {
		return nil
	}
	arr := res.Array()
	opts := make([]string, 0, len(arr))
	for _, v := range arr {
		opts = append(opts, v.String())
	}
	return opts
}

// get is nil-receiver safe so an absent snapshot reads as empty.
func (s *Settings) get(path string) gjson.Result {
	if s == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(s.raw, path)
}
