package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for the process-wide logger.
type Config struct {
	Level   string    // "debug", "info", ...; falls back to LOG_LEVEL
	Output  io.Writer // defaults to os.Stdout
	Service string
}

var (
	once sync.Once
	base zerolog.Logger
)

// Configure initialises the global logger. Only the first call has effect.
func Configure(cfg Config) {
	once.Do(func() {
		level := zerolog.InfoLevel
		lvl := cfg.Level
		if lvl == "" {
			lvl = os.Getenv("LOG_LEVEL")
		}
		if lvl != "" {
			if parsed, err := zerolog.ParseLevel(lvl); err == nil {
				level = parsed
			}
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339

		writer := cfg.Output
		if writer == nil {
			writer = os.Stdout
		}
		service := cfg.Service
		if service == "" {
			service = "saylani-fulfillment"
		}
		base = zerolog.New(writer).With().
			Timestamp().
			Str("service", service).
			Logger()
	})
}

func logger() zerolog.Logger {
	Configure(Config{})
	return base
}

// Base returns the configured logger.
func Base() zerolog.Logger {
	return logger()
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(component string) zerolog.Logger {
	return logger().With().Str("component", component).Logger()
}
