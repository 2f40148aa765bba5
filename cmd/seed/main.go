// Command seed replaces the travel package catalog with freshly generated
// sample data.
package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"innkeeper/internal/config"
	"innkeeper/internal/database"
	"innkeeper/internal/seed"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("INNKEEPER_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer db.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	count, err := seed.Run(context.Background(), db, rng)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed error")
	}

	logger.Info().Int("packages", count).Msg("travel package catalog seeded")
}
