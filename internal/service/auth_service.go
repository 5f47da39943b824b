package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/contact-service/internal/auth"
	"github.com/spec-kit/contact-service/internal/config"
	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/repository"
	"github.com/spec-kit/contact-service/internal/validation"
)

// AuthResult is a freshly issued token with the identity it belongs to.
type AuthResult struct {
	Identity domain.Identity
	Token    domain.Token
}

// AuthService coordinates registration and login flows and resolves token
// subjects to identities. Password hashes never leave this service.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	validator  *validation.Validator
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, validator *validation.Validator) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		validator:  validator,
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager shared with the gate.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates an account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email, fieldErrs := s.validator.Credentials(email, password)
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, duplicateAccountEmail()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError("get user", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateAccountEmail()
		}
		return nil, storeError("create user", err)
	}
	return s.issue(user.Identity())
}

// Login verifies credentials. An unknown email and a wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email, fieldErrs := s.validator.Credentials(email, password)
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &CredentialsError{}
		}
		return nil, storeError("get user", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, &CredentialsError{}
	}
	return s.issue(user.Identity())
}

// IssueToken signs a token for an existing account without a password.
// It backs operator tooling only.
func (s *AuthService) IssueToken(ctx context.Context, email string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "User", ID: email}
		}
		return nil, storeError("get user", err)
	}
	return s.issue(user.Identity())
}

// LookupIdentity resolves a token subject. Unknown ids yield an error
// wrapping repository.ErrNotFound.
func (s *AuthService) LookupIdentity(ctx context.Context, id string) (*domain.Identity, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("lookup identity %s: %w", id, err)
		}
		return nil, storeError("lookup identity", err)
	}
	identity := user.Identity()
	return &identity, nil
}

func (s *AuthService) issue(identity domain.Identity) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(identity.ID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{
		Identity: identity,
		Token:    domain.Token{Value: token, SubjectID: identity.ID, ExpiresAt: exp},
	}, nil
}

func duplicateAccountEmail() *ConflictError {
	return &ConflictError{Reason: DuplicateEmail, Message: "An account with this email already exists"}
}
