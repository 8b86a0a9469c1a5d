// Package mongotest starts a throwaway MongoDB for integration tests.
package mongotest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"

	platformmongo "github.com/Apurer/quickbite-api/internal/platform/mongo"
)

// Start runs mongo:7 and returns a database unique to t. Everything is torn
// down through t.Cleanup.
func Start(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	dbName := strings.ToLower(strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, disconnect, err := platformmongo.Connect(ctx, uri, dbName)
	require.NoError(t, err)
	t.Cleanup(func() { _ = disconnect(context.Background()) })
	return db
}
