package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seeder := NewSeeder(env.auth, env.contacts)

	first, err := seeder.Seed(ctx, DemoAccounts)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{UsersCreated: 2, ContactsCreated: 10}, first)

	second, err := seeder.Seed(ctx, DemoAccounts)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{UsersExisting: 2, ContactsSkipped: 10}, second)

	john, err := env.auth.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)

	page, err := env.contacts.List(ctx, john.Identity, ListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Contacts, 5)
	assert.Equal(t, "Alice Johnson", page.Contacts[0].Name)
	assert.Equal(t, "Emma Davis", page.Contacts[4].Name)
}
