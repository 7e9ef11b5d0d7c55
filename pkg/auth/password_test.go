package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/intellicall/pkg/auth"
)

func TestPasswordHasher(t *testing.T) {
	t.Parallel()

	h := auth.NewPasswordHasher(auth.WithBcryptCost(bcrypt.MinCost))

	t.Run("hash and compare", func(t *testing.T) {
		t.Parallel()
		hash, err := h.Hash("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", hash)
		assert.True(t, h.Compare("secret123", hash))
		assert.False(t, h.Compare("wrong", hash))
	})

	t.Run("empty password", func(t *testing.T) {
		t.Parallel()
		_, err := h.Hash("")
		assert.ErrorIs(t, err, auth.ErrPasswordRequired)
		assert.False(t, h.Compare("", "$2a$04$whatever"))
	})

	t.Run("too long", func(t *testing.T) {
		t.Parallel()
		_, err := h.Hash(strings.Repeat("a", 73))
		assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
	})

	t.Run("malformed hash never matches", func(t *testing.T) {
		t.Parallel()
		assert.False(t, h.Compare("secret123", "not-a-hash"))
	})

	t.Run("default cost", func(t *testing.T) {
		t.Parallel()
		hash, err := auth.NewPasswordHasher(auth.WithBcryptCost(1000)).Hash("secret123")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, auth.DefaultBcryptCost, cost)
	})
}
