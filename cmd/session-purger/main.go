package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/quickbite-api/internal/app/api"
	userpostgres "github.com/Apurer/quickbite-api/internal/domains/users/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/quickbite-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/quickbite-api/internal/platform/postgres"
)

// session-purger deletes expired rows from the Postgres session table. It
// is meant to run from cron when SESSION_DRIVER=postgres.
func main() {
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := platformobservability.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = run(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("session purge failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg api.Config, logger *slog.Logger) error {
	if cfg.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN not set; cannot purge sessions")
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.WithMaxOpenConns(1))
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer platformpostgres.Close(db)

	purged, err := userpostgres.NewSessionStore(db).PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
	return nil
}
