package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds the keyloom daemon configuration, decoded from
// keyloom.toml.
type Config struct {
	// Layout configures the active layout and its sources.
	Layout LayoutConfig `toml:"layout"`

	// Compose configures compose-table selection.
	Compose ComposeConfig `toml:"compose"`

	// IME configures the input-method gateway.
	IME IMEConfig `toml:"ime"`

	// Logging configures the structured logger.
	Logging LoggingConfig `toml:"logging"`

	// Trace configures the per-step resolution trace.
	Trace TraceConfig `toml:"trace"`
}

// LayoutConfig selects layout descriptions and their reload behavior.
type LayoutConfig struct {
	// Path is the active layout description. Empty means the
	// embedded builtin layout.
	Path string `toml:"path"`

	// Settings is the system settings snapshot consulted for the
	// fallback layout. Empty means no snapshot.
	Settings string `toml:"settings"`

	// Watch recompiles the active layout when its description or the
	// settings snapshot changes on disk.
	Watch bool `toml:"watch"`
}

// ComposeConfig selects the compose table.
type ComposeConfig struct {
	// File overrides the user compose file. Empty falls back to
	// $XCOMPOSEFILE and then ~/.XCompose.
	File string `toml:"file"`
}

// IMEConfig controls the input-method gateway.
type IMEConfig struct {
	// Enabled connects to the system input method at startup. A
	// failed connection degrades to direct delivery.
	Enabled bool `toml:"enabled"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Format is text or json.
	Format string `toml:"format"`
}

// TraceConfig controls the resolution step trace.
type TraceConfig struct {
	// Enabled writes one line per resolution step to stderr.
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Layout:  LayoutConfig{Watch: true},
		IME:     IMEConfig{Enabled: true},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// DefaultPath returns the user configuration file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keyloom", "keyloom.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "keyloom", "keyloom.toml")
}

// Load reads a configuration file. An empty path tries DefaultPath
// and falls back to Default when no file exists there; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	_, err := toml.DecodeFile(path, cfg)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		// No user file; the defaults serve.
	default:
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that cannot be represented by types
// alone.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w %q", ErrUnknownLogLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w %q", ErrUnknownLogFormat, c.Logging.Format)
	}
	return nil
}

// applyEnv overlays KEYLOOM_* environment variables onto the loaded
// values, so a single run can be redirected without editing the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("KEYLOOM_LAYOUT"); v != "" {
		c.Layout.Path = v
	}
	if v := os.Getenv("KEYLOOM_SETTINGS"); v != "" {
		c.Layout.Settings = v
	}
	if v := os.Getenv("KEYLOOM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("KEYLOOM_TRACE"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Trace.Enabled = on
		}
	}
	if v := os.Getenv("KEYLOOM_IME"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.IME.Enabled = on
		}
	}
}
