// Package logging configures the global slog logger for coldrop.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup configures the global slog logger. Debug raises the level from Info
// to Debug; json switches the handler from text to JSON. Output goes to w
// (os.Stderr when nil) so that stdout stays reserved for data.
func Setup(debug, json bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}
