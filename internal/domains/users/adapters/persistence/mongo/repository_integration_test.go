//go:build integration

package mongo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
	"github.com/Apurer/quickbite-api/internal/domains/users/ports"
	"github.com/Apurer/quickbite-api/internal/platform/mongo/mongotest"
)

func TestMongoRepository_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := mongotest.Start(t)
	ctx := context.Background()
	repo, err := NewRepository(ctx, db)
	require.NoError(t, err)

	created, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h", Role: domain.RoleStudent})
	require.NoError(t, err)
	assert.Len(t, created.ID, 24)

	_, err = repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h", Role: domain.RoleStudent})
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)

	created.ChangeRole("ADMIN")
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())

	_, err = repo.GetByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.AppendOrder(ctx, created.ID, fmt.Sprintf("o%d", i)))
		}(i)
	}
	wg.Wait()

	fetched, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, fetched.OrderIDs, 10)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
