package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/contact-service/internal/repository"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	registered, err := env.auth.Register(ctx, " John@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", registered.Identity.Email)
	assert.NotEmpty(t, registered.Token.Value)
	assert.Equal(t, registered.Identity.ID, registered.Token.SubjectID)

	loggedIn, err := env.auth.Login(ctx, "JOHN@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.Identity, loggedIn.Identity)

	claims, err := env.auth.TokenManager().ParseToken(loggedIn.Token.Value)
	require.NoError(t, err)
	assert.Equal(t, registered.Identity.ID, claims.Subject)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "john@example.com")

	_, err := env.auth.Register(ctx, "john@example.com", "another-password")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, DuplicateEmail, conflict.Reason)
}

func TestAuthService_LoginFailuresAreUniform(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "john@example.com")

	var credErr *CredentialsError
	_, err := env.auth.Login(ctx, "john@example.com", "wrong-password")
	assert.ErrorAs(t, err, &credErr)

	_, err = env.auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorAs(t, err, &credErr)

	_, err = env.auth.Login(ctx, "not-an-email", "123")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}

func TestAuthService_LookupIdentity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	identity := env.register(t, "john@example.com")

	got, err := env.auth.LookupIdentity(ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, identity, *got)

	_, err = env.auth.LookupIdentity(ctx, "3f1c2b9e-8a47-4d0e-9b6a-2f5d8c1e7a90")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuthService_IssueToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	identity := env.register(t, "john@example.com")

	result, err := env.auth.IssueToken(ctx, "John@example.com")
	require.NoError(t, err)
	assert.Equal(t, identity, result.Identity)

	_, err = env.auth.IssueToken(ctx, "ghost@example.com")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
