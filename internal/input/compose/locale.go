package compose

import (
	"strings"

	"golang.org/x/text/language"
)

// localeTags lists the locales carrying extra sequences. The neutral
// tag heads the list as the matcher's no-match default.
var localeTags = []language.Tag{
	language.Und,
	language.French,
	language.German,
	language.Spanish,
}

var localeNames = []string{"", "fr", "de", "es"}

var localeMatcher = language.NewMatcher(localeTags)

// ForLocale builds the compose table for a locale name, POSIX style
// ("fr_FR.UTF-8") or BCP 47 ("fr-FR"). Unknown, neutral and empty
// locales get the plain builtin table.
func ForLocale(locale string) *Table {
	name := normalizeLocale(locale)
	if name == "" {
		return Builtin()
	}
	tag, err := language.Parse(name)
	if err != nil {
		return Builtin()
	}
	_, idx, conf := localeMatcher.Match(tag)
	if idx == 0 || conf < language.High {
		return Builtin()
	}

	t := NewTable("builtin+" + localeNames[idx])
	addBuiltin(t)
	for _, extra := range localeExtras[localeNames[idx]] {
		addMulti(t, extra.seq, extra.text)
	}
	return t
}

// LoadTable builds the compose table for a locale plus an optional
// user compose file layered on top. A broken or unreadable user file
// still yields the locale table, with the error returned for
// reporting; the user's sequences override builtin ones.
func LoadTable(locale, userFile string) (*Table, error) {
	t := ForLocale(locale)
	if userFile == "" {
		return t, nil
	}
	defs, err := parseFile(userFile)
	if err != nil {
		return t, err
	}
	for _, d := range defs {
		if err := t.Add(d.seq, d.text, d.final); err != nil {
			return t, err
		}
	}
	return t, nil
}

// normalizeLocale strips POSIX codeset and modifier suffixes and
// rewrites the separator so language.Parse accepts the name. The
// neutral locales map to empty.
func normalizeLocale(locale string) string {
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	switch locale {
	case "", "C", "POSIX":
		return ""
	}
	return locale
}
