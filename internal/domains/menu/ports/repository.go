package ports

import (
	"context"
	"errors"

	"github.com/Apurer/quickbite-api/internal/domains/menu/domain"
)

var ErrNotFound = errors.New("menu item not found")

// Repository persists menu items. Create assigns the id.
type Repository interface {
	Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.MenuItem, error)
	Count(ctx context.Context) (int64, error)
}
