package service

import (
	"fmt"
	"strings"

	"github.com/spec-kit/contact-service/internal/validation"
)

// ValidationError reports every field that failed validation.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// ConflictReason identifies which uniqueness rule a write violated.
type ConflictReason int

const (
	DuplicateEmail ConflictReason = iota + 1
)

// ConflictError is returned when a write would break a uniqueness rule.
type ConflictError struct {
	Reason  ConflictReason
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError is returned when a record does not exist for the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", strings.ToLower(e.Resource), e.ID)
}

// StoreError wraps an infrastructure failure from the underlying store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// CredentialsError is returned for an unknown email or a wrong password alike.
type CredentialsError struct{}

func (e *CredentialsError) Error() string {
	return "invalid credentials"
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
