package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
	"github.com/Apurer/quickbite-api/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo   ports.Repository
	hasher ports.PasswordHasher
}

func NewService(repo ports.Repository, hasher ports.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, mapError(err)
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByUsername(ctx, input.Username); err == nil {
		return nil, alreadyExists(input.Username)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := domain.NewUser(input.Username, hash)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, user)
	if errors.Is(err, ports.ErrAlreadyExists) {
		// lost a race with a concurrent registration
		return nil, alreadyExists(input.Username)
	}
	return created, err
}

func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	return user, nil
}

func (s *Service) ChangeRole(ctx context.Context, id, role string) (*domain.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.ChangeRole(role)
	return s.repo.Update(ctx, user)
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) FindByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, notFound("id", id)
	}
	return user, err
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, notFound("username", username)
	}
	return user, err
}

func (s *Service) AttachOrder(ctx context.Context, userID, orderID string) error {
	err := s.repo.AppendOrder(ctx, userID, orderID)
	if errors.Is(err, ports.ErrNotFound) {
		return notFound("id", userID)
	}
	return err
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func alreadyExists(username string) error {
	return fmt.Errorf("%w with username: %s", ports.ErrAlreadyExists, username)
}

var _ ports.Service = (*Service)(nil)
