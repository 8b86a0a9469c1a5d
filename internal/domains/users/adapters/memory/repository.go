package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
	"github.com/Apurer/quickbite-api/internal/domains/users/ports"
)

// Repository is an in-memory users store. Listing follows insertion order.
type Repository struct {
	mu         sync.RWMutex
	items      map[string]*domain.User
	byUsername map[string]string
	order      []string
}

func NewRepository() *Repository {
	return &Repository{
		items:      map[string]*domain.User{},
		byUsername: map[string]string{},
	}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byUsername[user.Username]; taken {
		return nil, ports.ErrAlreadyExists
	}
	stored := user.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Role = stored.RoleOrDefault()
	r.items[stored.ID] = stored
	r.byUsername[stored.Username] = stored.ID
	r.order = append(r.order, stored.ID)
	return stored.Clone(), nil
}

func (r *Repository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[user.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if existing.Username != user.Username {
		if _, taken := r.byUsername[user.Username]; taken {
			return nil, ports.ErrAlreadyExists
		}
		delete(r.byUsername, existing.Username)
		r.byUsername[user.Username] = user.ID
	}
	r.items[user.ID] = user.Clone()
	return user.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return user.Clone(), nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.items[id].Clone(), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.items[id].Clone())
	}
	return users, nil
}

// AppendOrder mutates under the write lock so concurrent placements never
// drop a back-reference.
func (r *Repository) AppendOrder(_ context.Context, userID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[userID]
	if !ok {
		return ports.ErrNotFound
	}
	user.AttachOrder(orderID)
	return nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

var _ ports.Repository = (*Repository)(nil)
