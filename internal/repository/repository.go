// Package repository defines the storage contracts for users and contacts.
// Backends live in the postgres, sqlite and mongodb subpackages.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/contact-service/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches the lookup, including
	// records that exist but belong to another owner.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines persistence access for account holders.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// ContactFilter narrows a contact query. OwnerID is mandatory.
type ContactFilter struct {
	OwnerID string
	Type    *domain.ContactType
	Search  *string
	Limit   int
	Offset  int
}

// SearchTerm returns the search text exactly as given, or "" when none applies.
// Whitespace is part of the term.
func (f ContactFilter) SearchTerm() string {
	if f.Search == nil {
		return ""
	}
	return *f.Search
}

// ContactRepository encapsulates contact persistence. Every method is
// scoped to a single owner.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error)
	// FindByEmail returns the owner's contact with the given email, ignoring
	// excludeID when it is non-empty.
	FindByEmail(ctx context.Context, ownerID, email, excludeID string) (*domain.Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]domain.Contact, error)
	Count(ctx context.Context, filter ContactFilter) (int64, error)
	// Update writes the set fields in one statement and returns the stored record.
	Update(ctx context.Context, ownerID, id string, fields domain.ContactFields) (*domain.Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
	// ValidID reports whether id is syntactically a record identifier for this backend.
	ValidID(id string) bool
}

// EscapeLike escapes LIKE wildcards so s matches literally with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
