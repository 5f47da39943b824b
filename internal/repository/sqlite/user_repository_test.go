package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/repository"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	user := createUser(t, repo, "john@example.com")
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", byID.Email)
	assert.Equal(t, "hash", byID.PasswordHash)

	byEmail, err := repo.GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	createUser(t, repo, "john@example.com")

	err := repo.Create(ctx, &domain.User{Email: "john@example.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
