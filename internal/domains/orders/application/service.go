package application

import (
	"context"
	"errors"
	"fmt"

	menuports "github.com/Apurer/quickbite-api/internal/domains/menu/ports"
	"github.com/Apurer/quickbite-api/internal/domains/orders/domain"
	"github.com/Apurer/quickbite-api/internal/domains/orders/ports"
	userports "github.com/Apurer/quickbite-api/internal/domains/users/ports"
)

// Service orchestrates order placement and fulfilment.
type Service struct {
	repo  ports.Repository
	users ports.UserDirectory
	menu  ports.MenuCatalog
}

func NewService(repo ports.Repository, users ports.UserDirectory, menu ports.MenuCatalog) *Service {
	return &Service{repo: repo, users: users, menu: menu}
}

// Place resolves both references before anything is written, so a failed
// lookup leaves no order behind. If the back-reference cannot be recorded
// the new order is removed again.
func (s *Service) Place(ctx context.Context, input ports.PlaceInput) (ports.View, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return ports.View{}, err
	}
	item, err := s.menu.FindByID(ctx, input.MenuItemID)
	if err != nil {
		return ports.View{}, err
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	order, err := domain.NewOrder(user.ID, item.ID, item.Name, quantity)
	if err != nil {
		return ports.View{}, mapError(err)
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return ports.View{}, err
	}
	if err := s.users.AttachOrder(ctx, user.ID, created.ID); err != nil {
		if delErr := s.repo.Delete(ctx, created.ID); delErr != nil {
			return ports.View{}, errors.Join(err, fmt.Errorf("roll back order %s: %w", created.ID, delErr))
		}
		return ports.View{}, err
	}
	return project(created, created.ItemName, user.Username), nil
}

// ListByUser projects the snapshot item names.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]ports.View, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	views := make([]ports.View, 0, len(orders))
	for _, order := range orders {
		views = append(views, project(order, order.ItemName, user.Username))
	}
	return views, nil
}

func (s *Service) ListAll(ctx context.Context) ([]ports.View, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.projectLive(ctx, orders)
}

func (s *Service) ListPending(ctx context.Context) ([]ports.View, error) {
	orders, err := s.repo.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	return s.projectLive(ctx, orders)
}

// UpdateStatus checks existence before the status value.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (ports.View, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ports.View{}, notFound(id, err)
	}
	if err := order.UpdateStatus(status); err != nil {
		return ports.View{}, mapError(err)
	}
	updated, err := s.repo.Update(ctx, order)
	if err != nil {
		return ports.View{}, notFound(id, err)
	}
	username, err := s.username(ctx, updated.UserID, nil)
	if err != nil {
		return ports.View{}, err
	}
	return project(updated, updated.ItemName, username), nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(id, err)
	}
	return order, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// projectLive reads the current menu item name, falling back to the
// snapshot once the item has been deleted.
func (s *Service) projectLive(ctx context.Context, orders []*domain.Order) ([]ports.View, error) {
	usernames := map[string]string{}
	itemNames := map[string]string{}
	views := make([]ports.View, 0, len(orders))
	for _, order := range orders {
		username, err := s.username(ctx, order.UserID, usernames)
		if err != nil {
			return nil, err
		}
		name, ok := itemNames[order.MenuItemID]
		if !ok {
			item, err := s.menu.FindByID(ctx, order.MenuItemID)
			switch {
			case err == nil:
				name = item.Name
				itemNames[order.MenuItemID] = name
			case errors.Is(err, menuports.ErrNotFound):
				name = order.ItemName
			default:
				return nil, err
			}
		}
		views = append(views, project(order, name, username))
	}
	return views, nil
}

// username resolves the account name, memoised in cache when non-nil. A
// vanished account yields an empty name rather than failing the listing.
func (s *Service) username(ctx context.Context, userID string, cache map[string]string) (string, error) {
	if name, ok := cache[userID]; ok {
		return name, nil
	}
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, userports.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if cache != nil {
		cache[userID] = user.Username
	}
	return user.Username, nil
}

func project(order *domain.Order, itemName, username string) ports.View {
	return ports.View{
		ID:       order.ID,
		ItemName: itemName,
		Status:   order.Status,
		Username: username,
		Quantity: order.Quantity,
	}
}

var _ ports.Service = (*Service)(nil)
