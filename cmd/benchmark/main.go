package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"github.com/quantior/limitbook/pkg/bench"
	"github.com/quantior/limitbook/pkg/logging"
)

func main() {
	logging.Setup(logging.Config{
		Level:  "info",
		Pretty: true,
		Output: os.Stderr,
	})

	cfg, err := bench.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid benchmark configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := bench.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}

	if cfg.OutputPath != "" {
		if err := result.AppendToFile(cfg.OutputPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.OutputPath).Msg("failed to record results")
		}
		log.Info().Str("path", cfg.OutputPath).Msg("results recorded")
	}
}
