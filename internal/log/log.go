// ABOUTME: Process-wide zerolog setup for a terminal app that owns stdout
// ABOUTME: Logs go to a file; when it cannot be opened the logger is a no-op

package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// DebugEnv forces debug level when set to a non-empty value other than "0".
const DebugEnv = "POSTDASH_DEBUG"

// Options controls Setup.
type Options struct {
	Path  string // log file; empty disables logging
	Level string // debug, info, warn or error
	Debug bool   // overrides Level
}

// ParseLevel maps a level name to a zerolog level. Unknown names are an error.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", name)
}

// Setup points the global zerolog logger at opts.Path and returns a closer
// for the file. The terminal is in raw mode while the app runs, so nothing
// is ever written to stdout or stderr.
func Setup(opts Options) (io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nopCloser{}, err
	}
	if opts.Debug || debugFromEnv() {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if opts.Path == "" {
		zlog.Logger = zerolog.Nop()
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
		zlog.Logger = zerolog.Nop()
		return nopCloser{}, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		zlog.Logger = zerolog.Nop()
		return nopCloser{}, fmt.Errorf("opening log file: %w", err)
	}
	zlog.Logger = New(f)
	return f, nil
}

// New returns a timestamped logger writing JSON lines to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

func debugFromEnv() bool {
	v := os.Getenv(DebugEnv)
	return v != "" && v != "0"
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
