package ports

import (
	"context"

	menudomain "github.com/Apurer/quickbite-api/internal/domains/menu/domain"
	"github.com/Apurer/quickbite-api/internal/domains/orders/domain"
	userdomain "github.com/Apurer/quickbite-api/internal/domains/users/domain"
)

// PlaceInput is an order request. A nil Quantity defaults to 1. Status is
// accepted and ignored: placement always yields PENDING.
type PlaceInput struct {
	UserID     string
	MenuItemID string
	Quantity   *int
	Status     string
}

// View is the outward projection of an order.
type View struct {
	ID       string
	ItemName string
	Status   domain.Status
	Username string
	Quantity int
}

// Service exposes order use cases to adapters.
type Service interface {
	Place(ctx context.Context, input PlaceInput) (View, error)
	ListByUser(ctx context.Context, userID string) ([]View, error)
	ListAll(ctx context.Context) ([]View, error)
	ListPending(ctx context.Context) ([]View, error)
	UpdateStatus(ctx context.Context, id, status string) (View, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	Count(ctx context.Context) (int64, error)
}

// UserDirectory is the slice of the users context orders depend on.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*userdomain.User, error)
	AttachOrder(ctx context.Context, userID, orderID string) error
}

// MenuCatalog is the slice of the menu context orders depend on.
type MenuCatalog interface {
	FindByID(ctx context.Context, id string) (*menudomain.MenuItem, error)
}
