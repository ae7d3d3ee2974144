// Package logging provides structured logging setup for nycviz.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls the default logger.
type Options struct {
	// Dev selects human-readable text output; otherwise JSON.
	Dev bool
	// Level is debug, info, warn or error. Empty means debug in dev mode
	// and info otherwise.
	Level string
	// Output defaults to stderr so command output on stdout stays clean.
	Output io.Writer
}

// Setup initializes the default slog logger.
func Setup(opts Options) error {
	level := slog.LevelInfo
	if opts.Dev {
		level = slog.LevelDebug
	}
	if opts.Level != "" {
		parsed, err := ParseLevel(opts.Level)
		if err != nil {
			return err
		}
		level = parsed
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var handler slog.Handler
	if opts.Dev {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// ParseLevel parses a level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
