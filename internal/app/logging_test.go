package app

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/dshills/keyloom/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	log.Info("hello", "layout", "us")
	if got := buf.String(); !strings.Contains(got, `"msg":"hello"`) {
		t.Errorf("json log line = %q, want msg field", got)
	}

	buf.Reset()
	log = newLogger(config.LoggingConfig{Level: "info", Format: "text"}, &buf)
	log.Info("hello", "layout", "us")
	if got := buf.String(); !strings.Contains(got, "msg=hello") {
		t.Errorf("text log line = %q, want msg attribute", got)
	}
}

func TestNewLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)
	log.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("info line leaked through warn level: %q", buf.String())
	}
	log.Warn("loud")
	if !strings.Contains(buf.String(), "msg=loud") {
		t.Errorf("warn line missing: %q", buf.String())
	}
}
