package logging

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// ErrUnknownLogLevel is returned by Setup for a level outside
// debug/info/warn/error.
var ErrUnknownLogLevel = errors.New("unknown log level")

// Options controls the logging setup.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Interactive selects human-readable text output; otherwise JSON.
	Interactive bool
	// Placeholder replaces redacted secrets.
	Placeholder string
	// RunID is attached to every record.
	RunID string
}

// Setup installs the default slog logger: a text handler for interactive
// use or a JSON handler otherwise, wrapped in a RedactingHandler. Logs go
// to stderr so diagnostic output on stdout stays machine-consumable.
func Setup(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}

	var inner slog.Handler
	if opts.Interactive {
		inner = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		inner = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	handler := NewRedactingHandler(inner, opts.Placeholder).
		WithAttrs([]slog.Attr{slog.String("run_id", opts.RunID)})
	slog.SetDefault(slog.New(handler))
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, s)
	}
}
