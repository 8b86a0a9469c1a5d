package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
	"github.com/Apurer/quickbite-api/internal/domains/users/ports"
)

// DefaultSessionTTL bounds how long an idle login stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Sessions opens and resolves server-side login sessions.
type Sessions struct {
	store ports.SessionStore
	ttl   time.Duration
	now   func() time.Time
}

func NewSessions(store ports.SessionStore, ttl time.Duration) *Sessions {
	if store == nil {
		store = ports.NoopSessionStore
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{store: store, ttl: ttl, now: time.Now}
}

// TTL is the lifetime applied to newly opened sessions.
func (s *Sessions) TTL() time.Duration { return s.ttl }

// Open issues a fresh random token for user.
func (s *Sessions) Open(ctx context.Context, user *domain.User) (ports.Session, error) {
	session := ports.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return ports.Session{}, err
	}
	return session, nil
}

// Resolve returns the live session for token, evicting it when expired.
func (s *Sessions) Resolve(ctx context.Context, token string) (*ports.Session, error) {
	if token == "" {
		return nil, ports.ErrSessionNotFound
	}
	session, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.store.Delete(ctx, token)
		return nil, ports.ErrSessionNotFound
	}
	return session, nil
}

// Close invalidates token. Unknown tokens are ignored.
func (s *Sessions) Close(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.store.Delete(ctx, token)
	if errors.Is(err, ports.ErrSessionNotFound) {
		return nil
	}
	return err
}
