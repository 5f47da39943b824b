package dto

import (
	"time"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/service"
)

// CredentialsRequest payload for login and registration.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      domain.Identity `json:"user"`
}

// NewAuthResponse maps a service result.
func NewAuthResponse(r *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     r.Token.Value,
		ExpiresAt: r.Token.ExpiresAt,
		User:      r.Identity,
	}
}
