// Package logging configures zerolog for the CLI.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// Setup returns a logger writing to w. format "text" selects the human
// console writer, anything else JSON lines.
func Setup(level, format string, w io.Writer) zerolog.Logger {
	// Set log level
	lvl := zerolog.WarnLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}

	// Set output format
	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(lvl).With().Timestamp().Logger()
	}

	// Default to JSON
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
