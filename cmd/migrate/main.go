package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sportzone/backend/internal/adapters/database"
	"github.com/sportzone/backend/internal/infrastructure/clients/postgres"
	"github.com/sportzone/backend/internal/infrastructure/observability"
	"github.com/sportzone/backend/pkg/config"
)

// migrate applies the schema without starting the API. It needs only the
// database settings, so it does not go through config.Load validation.
func main() {
	cfg := config.Default()
	observability.InitLogger("sportzone-migrate", cfg.Environment, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := database.Migrate(ctx, client); err != nil {
		log.Error().Err(err).Msg("Migration failed")
		client.Close()
		os.Exit(1)
	}
	log.Info().Str("database", cfg.Database.Database).Msg("Schema is up to date")
}
