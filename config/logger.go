package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger sets up the global logger: a console writer locally, JSON elsewhere.
func Logger(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var l zerolog.Logger
	if env == "" || env == "local" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).Level(zerolog.DebugLevel)
	} else {
		l = zerolog.New(os.Stdout).Level(zerolog.InfoLevel)
	}
	l = l.With().Timestamp().Str("service", "wof").Logger()

	log.Logger = l
	return l
}
