package keymap

import (
	_ "embed"
	"errors"
	"io/fs"
)

// us.json is the embedded US layout, keyed by standard X11 keycodes
// (evdev scancode + 8). It backs the fallback layout whenever system
// configuration offers nothing better.
//
//go:embed us.json
var builtinUS []byte

// BuiltinJSON returns the raw embedded US layout description.
func BuiltinJSON() []byte {
	out := make([]byte, len(builtinUS))
	copy(out, builtinUS)
	return out
}

// Builtin compiles the embedded US layout. The description ships with
// the binary and is covered by tests, so a compile failure here is a
// build defect, not a runtime condition.
func (c *Compiler) Builtin() *Layout {
	l, err := c.compileBytes(builtinUS, "builtin:us")
	if err != nil {
		panic("keymap: embedded us layout: " + err.Error())
	}
	return l
}

// CompileFallback builds the always-available fallback layout. A
// configured description path is tried first; an empty or missing
// path lands on the embedded US layout, so the fallback can never be
// absent. A present-but-broken description also falls back, with the
// compile error returned for reporting.
func (c *Compiler) CompileFallback(path string) (*Layout, error) {
	if path == "" {
		return c.Builtin(), nil
	}
	l, err := c.CompileFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.Builtin(), nil
		}
		return c.Builtin(), err
	}
	return l, nil
}
