package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Level maps the verbosity flags onto a zerolog level.
func Level(verbose, debug bool) zerolog.Level {
	switch {
	case debug:
		return zerolog.DebugLevel
	case verbose:
		return zerolog.InfoLevel
	default:
		return zerolog.WarnLevel
	}
}

// New returns a console logger writing to w.
func New(w io.Writer, verbose, debug bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).
		Level(Level(verbose, debug)).
		With().
		Timestamp().
		Logger()
}

// NewJSON returns a JSON logger writing to w, for long-running services.
func NewJSON(w io.Writer, verbose, debug bool) zerolog.Logger {
	return zerolog.New(w).
		Level(Level(verbose, debug)).
		With().
		Timestamp().
		Logger()
}
