// Package obs configures structured logging for the sitesearch binaries.
package obs

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls where and how the global logger writes
type Options struct {
	Level  string
	Pretty bool
	Out    io.Writer
}

// InitLogger initializes the global logger
func InitLogger(level string) {
	Setup(Options{
		Level:  level,
		Pretty: os.Getenv("ENV") == "dev",
	})
}

// Setup initializes the global logger from opts. Output defaults to stderr
// so command output on stdout stays clean.
func Setup(opts Options) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logLevel, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// Logger returns a new logger with the given component name
func Logger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
