// Package errorutil standardizes the errors rendered by the HTTP layer.
package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared with API clients.
const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeNotFound           = "NOT_FOUND"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeUnknownIdentity    = "UNKNOWN_IDENTITY"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeRouteNotFound      = "ROUTE_NOT_FOUND"
	CodeBadRequest         = "BAD_REQUEST"
	CodeInternal           = "INTERNAL_ERROR"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Fields     []FieldError
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewValidationError(message string, fields []FieldError) *DomainError {
	return &DomainError{
		Code:       CodeValidationFailed,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

func NewNotFound(resource string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewUnauthorized(code, message string) *DomainError {
	return NewDomainError(code, message, http.StatusUnauthorized)
}

func NewBadRequest(code, message string) *DomainError {
	return NewDomainError(code, message, http.StatusBadRequest)
}

func NewInternalError(err error) *DomainError {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// AsDomainError returns err as a DomainError when it already is one.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
