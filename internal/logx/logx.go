// Package logx sets up slog loggers for the commands.
package logx

import (
	"io"
	"log/slog"
)

// LevelFromFlags returns the level for the usual -debug/-verbose/-quiet
// flags. Debug wins over verbose, which wins over quiet; with none set the
// level is Warn.
func LevelFromFlags(debug, verbose, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
