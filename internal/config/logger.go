package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// appName tags every log line so site logs can be told apart when several
// services ship to the same collector. Child loggers use "service" for the
// component name.
const appName = "cafe-site"

// NewLogger creates the site logger writing to stdout.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg LoggerConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).With().
		Timestamp().
		Str("app", appName).
		Logger()
}
