// Package compose implements multi-symbol character composition: dead
// keys and Multi_key sequences that accumulate into one character.
//
// A Table holds the sequence definitions, a Session walks it one
// symbol at a time. Feeding a symbol yields one of four outcomes:
// rejected (pass the symbol through, nothing pending), composing
// (sequence pending, emit nothing), composed (sequence done, emit the
// result) or cancelled (sequence broken, drop the symbol). After a
// composed or cancelled feed the session is idle again.
//
// Tables come from the builtin diacritics matrix, optionally enriched
// per locale, plus an XCompose-style user file layered on top. Only
// the plain file subset is supported: sequence lines, comments and
// blank lines. include directives are ignored because the builtin
// base already serves as the system table.
package compose
