// Package log builds the process-wide zerolog logger shared by the api
// and worker binaries.
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the root logger with the environment stamped on every
// entry. Debug level everywhere except production.
func New(environment string) zerolog.Logger {
	level := zerolog.DebugLevel
	if environment == "production" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	return zerolog.New(output).With().
		Timestamp().
		Str("env", environment).
		Logger()
}
