package shared

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog on stderr at the given level, as pretty
// console output or as JSON when structured is set.
func SetupLogger(level zerolog.Level, structured bool) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	if structured {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		out = os.Stderr
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// DebugLevel returns the debug level when debug is set, info otherwise.
func DebugLevel(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
