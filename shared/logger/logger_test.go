package logger_test

import (
	"bytes"
	"cleanbook/config"
	"cleanbook/shared/constant"
	"cleanbook/shared/logger"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogger(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restoreLogger(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("claim transaction failed"))

	assert.Contains(t, buf.String(), "claim transaction failed")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		expected zerolog.Level
	}{
		{name: "debug", logLevel: "debug", expected: zerolog.DebugLevel},
		{name: "info", logLevel: "info", expected: zerolog.InfoLevel},
		{name: "error", logLevel: "error", expected: zerolog.ErrorLevel},
		{name: "trace", logLevel: "trace", expected: zerolog.TraceLevel},
		{name: "invalid falls back to info", logLevel: "loud", expected: zerolog.InfoLevel},
		{name: "empty falls back to info", logLevel: "", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreLogger(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestSetLogLevel_ProductionUsesJSON(t *testing.T) {
	restoreLogger(t)

	cfg := &config.Config{}
	cfg.Server.LogLevel = "info"
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.App.Name = "cleanbook"

	logger.SetLogLevel(cfg)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	var buf bytes.Buffer
	log.Logger = log.Logger.Output(&buf)
	log.Info().Msg("booking created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cleanbook", line["app"])
	assert.Equal(t, constant.ServerEnvProduction, line["env"])
	assert.Equal(t, "booking created", line["message"])
}
