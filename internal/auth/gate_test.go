package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/repository"
)

type stubLookup map[string]domain.Identity

func (s stubLookup) LookupIdentity(_ context.Context, id string) (*domain.Identity, error) {
	if id == "broken" {
		return nil, errors.New("connection refused")
	}
	identity, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("lookup %s: %w", id, repository.ErrNotFound)
	}
	return &identity, nil
}

func newTestGate() (*Gate, *TokenManager) {
	tm := NewTokenManager("secret", 15)
	lookup := stubLookup{"user-1": {ID: "user-1", Email: "john@example.com"}}
	return NewGate(tm, lookup), tm
}

func bearer(t *testing.T, tm *TokenManager, subject string) string {
	t.Helper()
	token, _, err := tm.GenerateToken(subject)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGate_Authenticate(t *testing.T) {
	gate, tm := newTestGate()

	expired := NewTokenManager("secret", 1)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tests := []struct {
		name     string
		header   string
		wantKind ErrorKind
		wantErr  bool
	}{
		{name: "valid", header: bearer(t, tm, "user-1")},
		{name: "empty header", header: "", wantKind: MissingToken},
		{name: "wrong scheme", header: "Basic abc", wantKind: MissingToken},
		{name: "lowercase scheme", header: "bearer abc", wantKind: MissingToken},
		{name: "bearer without token", header: "Bearer ", wantKind: MissingToken},
		{name: "garbage token", header: "Bearer abc", wantKind: InvalidToken},
		{name: "expired", header: bearer(t, expired, "user-1"), wantKind: ExpiredToken},
		{name: "unknown subject", header: bearer(t, tm, "ghost"), wantKind: UnknownIdentity},
		{name: "lookup failure", header: bearer(t, tm, "broken"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := gate.Authenticate(context.Background(), tt.header)

			switch {
			case tt.wantKind != 0:
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantKind, authErr.Kind)
				assert.Nil(t, identity)
			case tt.wantErr:
				require.Error(t, err)
				var authErr *AuthError
				assert.False(t, errors.As(err, &authErr), "store failures are not auth errors")
			default:
				require.NoError(t, err)
				assert.Equal(t, domain.Identity{ID: "user-1", Email: "john@example.com"}, *identity)
			}
		})
	}
}
