package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the console logger. verbose and quiet override level.
func newLogger(w io.Writer, level string, verbose, quiet bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(selectLevel(level, verbose, quiet)).
		With().Timestamp().Logger()
}

func selectLevel(level string, verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
