/*
PURPOSE:
  Provides a structured logger for epoch-viz.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy.
  - Data-integrity warnings (count mismatch, empty epochs) must be visible.

  Implementation-discovered:
  - Text for terminals and scripts, JSON for pipelines, and a colored
    pretty handler for interactive use.

ARCHITECTURE INTEGRATION:
  - Used everywhere.
  - Configured once by internal/cli from --log-format/--log-level.

ERROR HANDLING:
  - Setup rejects unknown formats and levels.

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).
  - Logs go to stderr so stdout stays clean for `summary` output.

USAGE:
  output.Logger.Info("message", "key", "value")

SELF-HEALING INSTRUCTIONS:
  - Ensure Go 1.21+ is used.

RELATED FILES:
  - internal/output/pretty.go

MAINTENANCE:
  - None.
*/

package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// Setup builds a logger writing to w and installs it as Logger.
func Setup(format, level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "pretty":
		h = NewPrettyHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	l := slog.New(h)
	SetLogger(l)
	return l, nil
}
