package util

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Log is the process logger. InitLogger replaces it at startup.
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogger configures Log: readable console output in development,
// JSON everywhere else.
func InitLogger(env, level string) {
	var w io.Writer = os.Stdout
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	Log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// LogError logs an error with context
func LogError(message string, err error) {
	if err != nil {
		Log.Error().Err(err).Msg(message)
	}
}
