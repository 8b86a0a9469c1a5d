package ports

import (
	"errors"
	"time"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is what a verified bearer token asserts about its holder.
type TokenClaims struct {
	UserID    string
	Username  string
	Role      domain.Role
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies stateless bearer tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
	Verify(token string) (*TokenClaims, error)
}
