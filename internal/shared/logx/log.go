package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Console output in development,
// plain JSON elsewhere.
func Init(env string) {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// Agent returns a logger tagged with the agent name, used for agent run logs.
func Agent(name string) zerolog.Logger {
	return log.With().Str("agent", name).Logger()
}
