package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pass!1")
	require.NoError(t, err)
	require.NotEqual(t, "pass!1", hash)
	require.True(t, h.Compare(hash, "pass!1"))
	require.False(t, h.Compare(hash, "pass!2"))

	again, err := h.Hash("pass!1")
	require.NoError(t, err)
	require.NotEqual(t, hash, again)
}
