package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// EnvLogLevel overrides the log level, e.g. CZAI_LOG_LEVEL=debug.
const EnvLogLevel = "CZAI_LOG_LEVEL"

// newLogger writes human-readable logs to w. The level is warn unless
// verbose is set or EnvLogLevel names a valid level.
func newLogger(w io.Writer, verbose bool, getenv func(string) string) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	} else if v := getenv(EnvLogLevel); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
