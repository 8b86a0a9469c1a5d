package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/quickbite-api/internal/app/api"
	platformobservability "github.com/Apurer/quickbite-api/internal/platform/observability"
)

func TestRunRequiresPostgresDSN(t *testing.T) {
	err := run(context.Background(), api.Config{}, platformobservability.DiscardLogger())
	require.EqualError(t, err, "POSTGRES_DSN not set; cannot purge sessions")
}

func TestRunReportsConnectFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	err := run(ctx, api.Config{PostgresDSN: "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1"}, platformobservability.DiscardLogger())
	require.ErrorContains(t, err, "connect to postgres")
}
