package app

import (
	"io"
	"log/slog"
)

// newLogger builds the application logger writing to logW. level is one of
// debug, info, warn or error; anything else logs at info. format "json"
// selects the JSON handler, anything else the text handler. The global
// logger is left alone so each App logs in isolation.
func newLogger(level, format string, logW io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(logW, opts))
	}
	return slog.New(slog.NewTextHandler(logW, opts))
}
