// Package pgtest starts a throwaway PostgreSQL for integration tests.
package pgtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/quickbite-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/quickbite-api/internal/platform/postgres"
)

const image = "postgres:16-alpine"

// Start boots a migrated database and tears it down with the test. It is
// skipped under -short since it needs a Docker daemon.
func Start(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container skipped in short mode")
	}
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase("quickbite_test"),
		tcpostgres.WithUsername("quickbite"),
		tcpostgres.WithPassword("quickbite"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := platformpostgres.Connect(ctx, dsn, platformpostgres.WithMaxOpenConns(4))
	require.NoError(t, err)
	t.Cleanup(func() { platformpostgres.Close(db) })

	require.NoError(t, migrations.Run(db))
	return db
}
