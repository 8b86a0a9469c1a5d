package ports

import (
	"context"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
)

// RegisterInput carries a registration candidate. Role is accepted from
// clients but ignored: new accounts are always STUDENT.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	ChangeRole(ctx context.Context, id, role string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	AttachOrder(ctx context.Context, userID, orderID string) error
	Count(ctx context.Context) (int64, error)
}
