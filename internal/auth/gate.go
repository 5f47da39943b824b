package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/repository"
)

const bearerPrefix = "Bearer "

// IdentityLookup resolves a token subject to an identity. Implementations
// return an error wrapping repository.ErrNotFound for unknown ids.
type IdentityLookup interface {
	LookupIdentity(ctx context.Context, id string) (*domain.Identity, error)
}

// ProtectedHandler is a fiber handler that also receives the caller's identity.
type ProtectedHandler func(c *fiber.Ctx, identity domain.Identity) error

// Gate turns bearer tokens into identities.
type Gate struct {
	tokens     *TokenManager
	identities IdentityLookup
}

// NewGate constructs a gate.
func NewGate(tokens *TokenManager, identities IdentityLookup) *Gate {
	return &Gate{tokens: tokens, identities: identities}
}

// Authenticate verifies the raw Authorization header value and resolves its subject.
func (g *Gate) Authenticate(ctx context.Context, header string) (*domain.Identity, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, &AuthError{Kind: MissingToken}
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return nil, &AuthError{Kind: MissingToken}
	}

	claims, err := g.tokens.ParseToken(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, &AuthError{Kind: ExpiredToken, Err: err}
		}
		return nil, &AuthError{Kind: InvalidToken, Err: err}
	}

	identity, err := g.identities.LookupIdentity(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &AuthError{Kind: UnknownIdentity, Err: err}
		}
		return nil, err
	}
	return identity, nil
}

// Protect wraps next so it only runs for authenticated requests.
func (g *Gate) Protect(next ProtectedHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := g.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		return next(c, *identity)
	}
}
