package ports

import (
	"context"
	"errors"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("Invalid username or password")
)

// Repository persists user accounts. Create assigns the id and must reject a
// second account with the same username with ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	AppendOrder(ctx context.Context, userID, orderID string) error
	Count(ctx context.Context) (int64, error)
}

// PasswordHasher hides the one-way hashing scheme from the service.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}
