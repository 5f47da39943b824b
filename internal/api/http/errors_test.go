package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/contact-service/internal/auth"
	"github.com/spec-kit/contact-service/internal/service"
	"github.com/spec-kit/contact-service/internal/validation"
	"github.com/spec-kit/contact-service/pkg/util/errorutil"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "validation",
			err:         &service.ValidationError{Fields: []validation.FieldError{{Field: "name", Message: "Name is required"}}},
			wantStatus:  http.StatusBadRequest,
			wantCode:    errorutil.CodeValidationFailed,
			wantMessage: "Validation failed",
		},
		{
			name:        "duplicate email",
			err:         &service.ConflictError{Reason: service.DuplicateEmail, Message: "A contact with this email already exists"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    errorutil.CodeDuplicateEmail,
			wantMessage: "A contact with this email already exists",
		},
		{
			name:        "not found",
			err:         fmt.Errorf("get: %w", &service.NotFoundError{Resource: "Contact", ID: "x"}),
			wantStatus:  http.StatusNotFound,
			wantCode:    errorutil.CodeNotFound,
			wantMessage: "Contact not found",
		},
		{
			name:        "expired token",
			err:         &auth.AuthError{Kind: auth.ExpiredToken},
			wantStatus:  http.StatusUnauthorized,
			wantCode:    errorutil.CodeTokenExpired,
			wantMessage: "Token has expired.",
		},
		{
			name:        "unknown identity",
			err:         &auth.AuthError{Kind: auth.UnknownIdentity},
			wantStatus:  http.StatusUnauthorized,
			wantCode:    errorutil.CodeUnknownIdentity,
			wantMessage: "Token is not valid. User not found.",
		},
		{
			name:        "bad credentials",
			err:         &service.CredentialsError{},
			wantStatus:  http.StatusUnauthorized,
			wantCode:    errorutil.CodeInvalidCredentials,
			wantMessage: "Invalid email or password",
		},
		{
			name:        "store failure",
			err:         &service.StoreError{Op: "list contacts", Err: errors.New("disk full")},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    errorutil.CodeInternal,
			wantMessage: "Internal server error",
		},
		{
			name:        "fiber client error",
			err:         fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"),
			wantStatus:  http.StatusMethodNotAllowed,
			wantCode:    errorutil.CodeBadRequest,
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "anything else",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    errorutil.CodeInternal,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMessage, got.Message)
		})
	}
}

func TestToDomainError_PassesDomainErrorsThrough(t *testing.T) {
	in := errorutil.NewBadRequest(errorutil.CodeBadRequest, "Invalid request body")
	assert.Same(t, in, toDomainError(fmt.Errorf("wrapped: %w", in)))
}
