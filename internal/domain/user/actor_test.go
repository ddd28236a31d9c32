//go:build unit

package user_test

import (
	"testing"

	"kilo-share/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	for _, s := range []string{"admin", "user"} {
		r, err := user.NewRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, r.String())
	}

	for _, s := range []string{"", "Admin", "viewer"} {
		_, err := user.NewRole(s)
		assert.ErrorIs(t, err, user.ErrInvalidRole, s)
	}
}

func TestActor(t *testing.T) {
	id := uuid.New()

	t.Run("implicit user role", func(t *testing.T) {
		a := user.NewActor(id)
		assert.Equal(t, []user.Role{user.RoleUser}, a.Roles())
		assert.True(t, a.IsAuthenticated())
		assert.False(t, a.IsAdmin())
		assert.True(t, a.Is(id))
		assert.False(t, a.Is(uuid.New()))
	})

	t.Run("admin grant deduplicated", func(t *testing.T) {
		a := user.NewActor(id, user.RoleAdmin, user.RoleUser, user.RoleAdmin, user.Role("bogus"))
		assert.Equal(t, []user.Role{user.RoleUser, user.RoleAdmin}, a.Roles())
		assert.True(t, a.IsAdmin())
	})

	t.Run("anonymous", func(t *testing.T) {
		assert.False(t, user.Anonymous.IsAuthenticated())
		assert.False(t, user.Anonymous.IsAdmin())
		assert.False(t, user.Anonymous.Is(uuid.Nil))
	})
}
