package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/quickbite-api/internal/domains/menu/domain"
	"github.com/Apurer/quickbite-api/internal/domains/menu/ports"
)

// Repository keeps menu items in memory, listed in insertion order.
type Repository struct {
	mu    sync.RWMutex
	items map[string]*domain.MenuItem
	order []string
}

func NewRepository() *Repository {
	return &Repository{items: map[string]*domain.MenuItem{}}
}

func (r *Repository) Create(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := item.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if _, exists := r.items[stored.ID]; !exists {
		r.order = append(r.order, stored.ID)
	}
	r.items[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *Repository) Update(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.items[item.ID] = item.Clone()
	return item.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return item.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]*domain.MenuItem, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.items[id].Clone())
	}
	return items, nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

var _ ports.Repository = (*Repository)(nil)
