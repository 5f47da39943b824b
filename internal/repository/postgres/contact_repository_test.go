package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/persistence"
	"github.com/spec-kit/contact-service/internal/repository"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError("op", nil))
	assert.ErrorIs(t, mapError("op", pgx.ErrNoRows), repository.ErrNotFound)
	assert.ErrorIs(t, mapError("op", &pgconn.PgError{Code: "23505"}), repository.ErrDuplicate)

	other := errors.New("boom")
	err := mapError("op", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, repository.ErrDuplicate)
}

func TestBuildWhere(t *testing.T) {
	work := domain.ContactTypeWork
	search := " 50%_off "

	where, args := buildWhere(repository.ContactFilter{OwnerID: "owner", Type: &work, Search: &search})

	assert.Equal(t, `owner_id = $1 AND type = $2 AND (name ILIKE $3 ESCAPE '\' OR email ILIKE $3 ESCAPE '\' OR phone ILIKE $3 ESCAPE '\')`, where)
	assert.Equal(t, []any{"owner", work, `% 50\%\_off %`}, args)
}

func TestContactRepository_ValidID(t *testing.T) {
	repo := NewContactRepository(nil)
	assert.True(t, repo.ValidID("3f1c2b9e-8a47-4d0e-9b6a-2f5d8c1e7a90"))
	assert.False(t, repo.ValidID("not-a-uuid"))
	assert.False(t, repo.ValidID("3f1c2b9e8a474d0e9b6a2f5d8c1e7a90"))
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	// A nil pool proves no query is attempted.
	ctx := context.Background()
	users := NewUserRepository(nil)
	contacts := NewContactRepository(nil)
	owner := "3f1c2b9e-8a47-4d0e-9b6a-2f5d8c1e7a90"

	_, err := users.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = contacts.GetByID(ctx, owner, "42")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	name := "Alice"
	_, err = contacts.Update(ctx, owner, "42", domain.ContactFields{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, contacts.Delete(ctx, owner, "42"), repository.ErrNotFound)
}

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunPostgresMigrations(ctx, pool, zap.NewNop()))
	_, err = pool.Exec(ctx, `TRUNCATE contacts, users`)
	require.NoError(t, err)
	return pool
}

func TestContactRepository_Integration(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	contacts := NewContactRepository(pool)

	owner := &domain.User{Email: "john@example.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, owner))
	assert.ErrorIs(t, users.Create(ctx, &domain.User{Email: "JOHN@example.com", PasswordHash: "x"}), repository.ErrDuplicate)

	alice := &domain.Contact{OwnerID: owner.ID, Name: "alice", Email: "alice@example.com", Phone: "+1234567890", Type: domain.ContactTypePersonal}
	bob := &domain.Contact{OwnerID: owner.ID, Name: "Bob", Email: "bob@example.com", Phone: "+1234567891", Type: domain.ContactTypeWork}
	require.NoError(t, contacts.Create(ctx, alice))
	require.NoError(t, contacts.Create(ctx, bob))

	list, err := contacts.List(ctx, repository.ContactFilter{OwnerID: owner.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bob", list[0].Name, "byte order puts uppercase first")

	name := "Alice"
	updated, err := contacts.Update(ctx, owner.ID, alice.ID, domain.ContactFields{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, alice.Email, updated.Email)

	email := "bob@example.com"
	_, err = contacts.Update(ctx, owner.ID, alice.ID, domain.ContactFields{Email: &email})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, contacts.Delete(ctx, owner.ID, alice.ID))
	_, err = contacts.GetByID(ctx, owner.ID, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
