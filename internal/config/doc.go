// Package config loads the keyloom daemon configuration and the
// environment-derived inputs around it.
//
// Three sources are kept separate because they have different owners
// and lifetimes. The TOML file (keyloom.toml) belongs to the user and
// is read once at startup, with KEYLOOM_* environment variables
// overlaid for one-off redirection. The system settings snapshot is a
// JSON file owned by the platform's keyboard preferences; keyloom
// reads whole-path values out of it with gjson and never writes it.
// The locale chain (LC_ALL, LC_CTYPE, LANG, "C") is read from the
// environment each time a compose table is loaded.
//
// Validation is deliberately shallow: only values with a closed
// vocabulary (log level, log format) are checked here. Whether a
// layout path compiles or a compose file parses is decided by the
// packages that consume them, so those errors carry their own
// context.
package config
