package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
	"github.com/Apurer/quickbite-api/internal/domains/users/ports"
)

func TestRepository_CreateAssignsIDAndRejectsDuplicates(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	user, err := domain.NewUser("alice", "hash")
	require.NoError(t, err)
	created, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "x"})
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)

	fetched, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestRepository_ListKeepsInsertionOrder(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, &domain.User{Username: fmt.Sprintf("user%d", i), PasswordHash: "h"})
		require.NoError(t, err)
	}
	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 5)
	for i, u := range users {
		assert.Equal(t, fmt.Sprintf("user%d", i), u.Username)
	}
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}

func TestRepository_AppendOrderConcurrently(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	created, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.AppendOrder(ctx, created.ID, fmt.Sprintf("o%d", i))
		}(i)
	}
	wg.Wait()

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.OrderIDs, 50)
	assert.ErrorIs(t, repo.AppendOrder(ctx, "missing", "o"), ports.ErrNotFound)
}

// An empty role on create is stored as STUDENT; mutating the returned
// copy must not leak into the store.
func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	created, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	created.ChangeRole("ADMIN")

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, fetched.Role)
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	session := ports.Session{Token: "t1", UserID: "u1", Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Get(ctx, "t1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}
