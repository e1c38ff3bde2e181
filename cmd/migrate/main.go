package main

import (
	"cleanbook/config"
	"cleanbook/helper"
	"cleanbook/shared/logger"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	usage := strings.Join(helper.Actions(), "|")

	if len(os.Args) < 2 { //nolint:mnd
		log.Fatal().Msgf("usage: migrate <%s>", usage)
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	if err := helper.Run(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("usage", usage).Msg("migration failed")
	}
}
