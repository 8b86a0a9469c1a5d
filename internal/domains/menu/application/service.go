package application

import (
	"context"
	"errors"

	"github.com/Apurer/quickbite-api/internal/domains/menu/domain"
	"github.com/Apurer/quickbite-api/internal/domains/menu/ports"
)

// Service implements the menu catalogue.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*domain.MenuItem, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, input ports.ItemInput) (*domain.MenuItem, error) {
	item, err := domain.NewMenuItem(input.Name, input.Description, input.Price)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, item)
}

// Update fully replaces name, description and price. The id never changes.
func (s *Service) Update(ctx context.Context, id string, input ports.ItemInput) (*domain.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(id, err)
	}
	if err := item.Replace(input.Name, input.Description, input.Price); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, notFound(id, err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return notFound(id, s.repo.Delete(ctx, id))
}

func (s *Service) FindByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(id, err)
	}
	return item, nil
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

var _ ports.Service = (*Service)(nil)
