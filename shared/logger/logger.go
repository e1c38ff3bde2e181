// Package logger configures the global zerolog logger.
package logger

import (
	"cleanbook/config"
	"cleanbook/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel applies when LOG_LEVEL is empty or not a zerolog level.
const DefaultLevel = zerolog.InfoLevel

// InitLogger installs a human readable console logger at trace level. It is
// meant for the window before config is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

// SetLogLevel applies the configured level. Production switches to JSON lines
// tagged with the app name and environment.
func SetLogLevel(cfg *config.Config) {
	level := ParseLevel(cfg.Server.LogLevel)
	zerolog.SetGlobalLevel(level)

	if cfg.Server.Env == constant.ServerEnvProduction {
		log.Logger = structured(os.Stdout, cfg)
	}

	log.Debug().Str("level", level.String()).Str("env", cfg.Server.Env).Msg("logger configured")
}

// ParseLevel reads a zerolog level name, falling back to DefaultLevel.
func ParseLevel(value string) zerolog.Level {
	level, err := zerolog.ParseLevel(value)
	if err != nil || level == zerolog.NoLevel {
		return DefaultLevel
	}

	return level
}

func structured(out io.Writer, cfg *config.Config) zerolog.Logger {
	return zerolog.New(out).With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("env", cfg.Server.Env).
		Logger()
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
