package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/persistence"
)

func setupTestDB(t *testing.T) *persistence.SQLite {
	t.Helper()

	db, err := persistence.OpenSQLite(context.Background(), persistence.MemorySQLiteDSN(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, persistence.RunSQLiteMigrations(db.Writer))
	return db
}

func createUser(t *testing.T, repo *UserRepository, email string) *domain.User {
	t.Helper()

	user := &domain.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func newContact(ownerID, name, email string, typ domain.ContactType) *domain.Contact {
	return &domain.Contact{
		OwnerID: ownerID,
		Name:    name,
		Email:   email,
		Phone:   "+1234567890",
		Type:    typ,
	}
}

func ptr[T any](v T) *T { return &v }
