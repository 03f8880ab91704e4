// Package logger configures the application's structured logging.
//
// It uses zerolog everywhere: human-friendly console output in development,
// JSON elsewhere. The logger is built once at startup and injected into the
// components that need it; nothing logs through a package-level global.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// New builds the application logger for the given environment and minimum
// level. Unknown level strings fall back to info.
func New(env, level string) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(lvl).With().Timestamp().Str("service", "groupomania").Logger()
}
