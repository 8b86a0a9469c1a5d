package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
	"github.com/Apurer/quickbite-api/internal/domains/users/ports"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestRepository_CreateAndLookup(t *testing.T) {
	repo := NewRepository(openSQLite(t))
	ctx := context.Background()

	user, err := domain.NewUser("alice", "hash")
	require.NoError(t, err)
	created, err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, domain.RoleStudent, byID.Role)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_CreateDefaultsEmptyRole(t *testing.T) {
	repo := NewRepository(openSQLite(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, created.Role)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, fetched.Role)
}

func TestRepository_DuplicateUsername(t *testing.T) {
	repo := NewRepository(openSQLite(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h", Role: domain.RoleStudent})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h", Role: domain.RoleStudent})
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)
}

func TestRepository_UpdateRole(t *testing.T) {
	repo := NewRepository(openSQLite(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h", Role: domain.RoleStudent})
	require.NoError(t, err)
	created.ChangeRole("ADMIN")
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	_, err = repo.Update(ctx, &domain.User{ID: "missing", Username: "ghost"})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_AppendOrderAndList(t *testing.T) {
	repo := NewRepository(openSQLite(t))
	ctx := context.Background()

	var ids []string
	for i := 1; i <= 3; i++ {
		created, err := repo.Create(ctx, &domain.User{Username: fmt.Sprintf("user%d", i), PasswordHash: "h", Role: domain.RoleStudent})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	require.NoError(t, repo.AppendOrder(ctx, ids[0], "o1"))
	require.NoError(t, repo.AppendOrder(ctx, ids[0], "o2"))
	assert.ErrorIs(t, repo.AppendOrder(ctx, "missing", "o3"), ports.ErrNotFound)

	fetched, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"o1", "o2"}, fetched.OrderIDs)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestSessionStore_SaveGetPurge(t *testing.T) {
	store := NewSessionStore(openSQLite(t))
	ctx := context.Background()

	live := ports.Session{Token: "live", UserID: "u1", Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}
	stale := ports.Session{Token: "stale", UserID: "u1", Username: "alice", ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, store.Save(ctx, live))
	require.NoError(t, store.Save(ctx, stale))

	got, err := store.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
	_, err = store.Get(ctx, "stale")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "live"))
	_, err = store.Get(ctx, "live")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestRepository_NotConfigured(t *testing.T) {
	var repo *Repository
	_, err := repo.GetByID(context.Background(), "x")
	assert.Error(t, err)
}
