package persistence

import (
	"context"
	"testing"

	"github.com/fiscalmanager/backend/internal/domain/identity"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormUserRepository(db)

	user, err := identity.NewUser("Ana", "Ana@Example.com", "secret", identity.RoleUser)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", found.Email)
		assert.Equal(t, identity.RoleUser, found.Role)
		assert.True(t, found.VerifyPassword("secret"))
	})

	t.Run("find by email ignores case", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "ANA@example.COM")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("exists", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "bia@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup, err := identity.NewUser("Outra Ana", "ana@example.com", "x", identity.RoleAdmin)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), identity.ErrEmailTaken)
	})

	t.Run("malformed email is not found", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "ana@")
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
