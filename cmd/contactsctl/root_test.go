package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "contacts.db"))
	t.Setenv("AUTH_JWT_SECRET", "cli-test-secret")
	t.Setenv("AUTH_BCRYPT_COST", "4")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite store is up to date")
}

func TestSeed_IsRepeatable(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "users: 2 created, 0 already present")
	assert.Contains(t, out, "contacts: 10 created, 0 skipped")
	assert.Contains(t, out, "john@example.com")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "users: 0 created, 2 already present")
	assert.Contains(t, out, "contacts: 0 created, 10 skipped")
}

func TestToken(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "seed")
	require.NoError(t, err)

	out, err := run(t, "token", "--email", "Jane@Example.com")
	require.NoError(t, err)
	firstLine := strings.SplitN(out, "\n", 2)[0]
	assert.Len(t, strings.Split(firstLine, "."), 3)
	assert.Contains(t, out, "expires")

	_, err = run(t, "token", "--email", "nobody@example.com")
	assert.Error(t, err)

	_, err = run(t, "token")
	assert.EqualError(t, err, "--email is required")
}
