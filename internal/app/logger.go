package app

import (
	"io"
	"log/slog"
)

// newLogger builds the application's own logger without touching the global
// default. Unknown levels fall back to info; any format other than "json"
// gives the text handler.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch formatStr {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("component", "prodgraph")
}
