package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
	"github.com/Apurer/quickbite-api/internal/domains/users/ports"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", time.Hour)
	require.NoError(t, err)

	raw, expiresAt, err := issuer.Issue(&domain.User{ID: "u1", Username: "alice", Role: domain.RoleAdmin})
	require.NoError(t, err)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := issuer.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestJWTIssuer_RejectsForeignAndExpiredTokens(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", time.Minute)
	require.NoError(t, err)
	other, err := NewJWTIssuer("other", time.Minute)
	require.NoError(t, err)

	raw, _, err := other.Issue(&domain.User{ID: "u1"})
	require.NoError(t, err)
	_, err = issuer.Verify(raw)
	require.ErrorIs(t, err, ports.ErrInvalidToken)

	raw, _, err = issuer.Issue(&domain.User{ID: "u1"})
	require.NoError(t, err)
	issuer.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = issuer.Verify(raw)
	require.ErrorIs(t, err, ports.ErrInvalidToken)

	_, err = issuer.Verify("garbage")
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	_, err := NewJWTIssuer("", time.Minute)
	require.Error(t, err)
}
