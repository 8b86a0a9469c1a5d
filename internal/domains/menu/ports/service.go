package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/quickbite-api/internal/domains/menu/domain"
)

// ItemInput is the caller-supplied content of a menu item.
type ItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

// Service exposes the menu catalogue use cases.
type Service interface {
	List(ctx context.Context) ([]*domain.MenuItem, error)
	Create(ctx context.Context, input ItemInput) (*domain.MenuItem, error)
	Update(ctx context.Context, id string, input ItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
