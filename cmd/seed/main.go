package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mbaye/ecom-backend/internal/config"
	"github.com/mbaye/ecom-backend/internal/db"
	"github.com/mbaye/ecom-backend/internal/seed"
)

var (
	fixturePath = flag.String("fixture", "fixtures/seed.json", "Path to the fixture JSON file")
	resetFlag   = flag.Bool("reset", false, "Drop and recreate all tables before loading the fixture")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	conn, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	fixture, err := seed.LoadFixture(*fixturePath)
	if err != nil {
		logger.Fatal().Err(err).Str("fixture", *fixturePath).Msg("fixture load failed")
	}

	if *resetFlag {
		if err := seed.Reset(conn, fixture); err != nil {
			logger.Fatal().Err(err).Msg("reset failed")
		}
		logger.Info().Msg("database reset and seeded")
		return
	}
	if err := seed.Populate(conn, fixture); err != nil {
		logger.Fatal().Err(err).Msg("populate failed")
	}
	logger.Info().Msg("database populated")
}
