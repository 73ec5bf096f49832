// Package logging configures zerolog for the Sclera binaries.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu   sync.RWMutex
	root = newLogger(os.Stderr, zerolog.InfoLevel)
)

// Setup initializes the process-wide logger. Level is one of
// "debug", "info", "warn", "error"; unknown values fall back to info.
// When stderr is a terminal, output uses the human-readable console
// writer, otherwise structured JSON.
func Setup(level string) {
	var out io.Writer = os.Stderr
	if term.IsTerminal(int(os.Stderr.Fd())) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	mu.Lock()
	root = newLogger(out, parseLevel(level))
	mu.Unlock()
}

// SetOutput redirects all log output, primarily for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	root = newLogger(w, root.GetLevel())
	mu.Unlock()
}

// Component returns a logger tagged with the given component name.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With().Str("component", name).Logger()
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
