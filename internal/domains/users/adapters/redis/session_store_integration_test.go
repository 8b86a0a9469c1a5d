//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/quickbite-api/internal/domains/users/ports"
	"github.com/Apurer/quickbite-api/internal/platform/redis/redistest"
)

func TestRedisSessionStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := redistest.Start(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	session := ports.Session{Token: "t1", UserID: "u1", Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	ttl, err := client.TTL(ctx, keyPrefix+"t1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Get(ctx, "t1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}
