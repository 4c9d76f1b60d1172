// ABOUTME: Tests for zerolog setup: level parsing, file output, and fallbacks
// ABOUTME: Setup mutates global logger state, so these tests run serially

package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{" error ", zerolog.ErrorLevel, false},
		{"loud", zerolog.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf)
	l.Info().Str("handle", "alice").Msg("followed")

	out := buf.String()
	if !strings.Contains(out, `"handle":"alice"`) || !strings.Contains(out, `"time"`) {
		t.Errorf("unexpected log line %q", out)
	}
}

func TestSetupWritesToFile(t *testing.T) {
	saved, savedLevel := zlog.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		zlog.Logger = saved
		zerolog.SetGlobalLevel(savedLevel)
	})
	t.Setenv(DebugEnv, "")

	path := filepath.Join(t.TempDir(), "nested", "postdash.log")
	closer, err := Setup(Options{Path: path, Level: "warn"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	zlog.Info().Msg("hidden")
	zlog.Warn().Msg("shown")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("level filtering wrong, log = %q", data)
	}
}

func TestSetupDebugOverrides(t *testing.T) {
	saved, savedLevel := zlog.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		zlog.Logger = saved
		zerolog.SetGlobalLevel(savedLevel)
	})

	t.Setenv(DebugEnv, "1")
	if _, err := Setup(Options{Level: "error"}); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("env did not force debug, level = %v", zerolog.GlobalLevel())
	}

	t.Setenv(DebugEnv, "0")
	if _, err := Setup(Options{Level: "error", Debug: true}); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("Debug option ignored, level = %v", zerolog.GlobalLevel())
	}
}

func TestSetupBadLevel(t *testing.T) {
	saved, savedLevel := zlog.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		zlog.Logger = saved
		zerolog.SetGlobalLevel(savedLevel)
	})

	if _, err := Setup(Options{Level: "verbose"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
