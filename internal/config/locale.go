package config

import (
	"os"
	"path/filepath"
)

// LocaleChain is the ordered locale preference consulted when a
// compose table is loaded. Entries are environment-style values; the
// last entry is the neutral default and is always non-empty.
type LocaleChain [4]string

// Locales reads the chain from the environment in POSIX precedence:
// LC_ALL, then LC_CTYPE, then LANG, then the neutral "C". The chain is
// read once per compose-table load, not cached across loads.
func Locales() LocaleChain {
	return LocaleChain{
		os.Getenv("LC_ALL"),
		os.Getenv("LC_CTYPE"),
		os.Getenv("LANG"),
		"C",
	}
}

// Resolve returns the first non-empty entry of the chain.
func (lc LocaleChain) Resolve() string {
	for _, v := range lc {
		if v != "" {
			return v
		}
	}
	return "C"
}

// ComposeFile resolves the user compose file: the configured override,
// then $XCOMPOSEFILE, then ~/.XCompose. The implicit ~/.XCompose is
// optional and skipped when absent; an explicitly named file is
// returned as-is so a missing one surfaces as a load error.
func (c *Config) ComposeFile() string {
	if c.Compose.File != "" {
		return c.Compose.File
	}
	if env := os.Getenv("XCOMPOSEFILE"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".XCompose")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
