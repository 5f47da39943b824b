package dto

import (
	"time"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/service"
)

// ContactRequest is the body of create and update calls. Each field records
// whether it was present so updates can tell omitted from empty.
type ContactRequest struct {
	Name  domain.Optional[string] `json:"name"`
	Email domain.Optional[string] `json:"email"`
	Phone domain.Optional[string] `json:"phone"`
	Type  domain.Optional[string] `json:"type"`
}

// ToInput converts the request into service input.
func (r ContactRequest) ToInput() service.ContactInput {
	return service.ContactInput{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		Type:  r.Type,
	}
}

// ContactResponse is a contact as returned to its owner. The owner id is never exposed.
type ContactResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewContactResponse maps a domain contact.
func NewContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewContactList maps a page of contacts, never returning nil.
func NewContactList(contacts []domain.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, NewContactResponse(&contacts[i]))
	}
	return out
}

// PaginationResponse is the pagination block of a list response.
type PaginationResponse struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalContacts int64 `json:"totalContacts"`
	HasNextPage   bool  `json:"hasNextPage"`
	HasPrevPage   bool  `json:"hasPrevPage"`
}

// NewPaginationResponse maps domain pagination.
func NewPaginationResponse(p domain.Pagination) *PaginationResponse {
	return &PaginationResponse{
		CurrentPage:   p.CurrentPage,
		TotalPages:    p.TotalPages,
		TotalContacts: p.TotalContacts,
		HasNextPage:   p.HasNextPage,
		HasPrevPage:   p.HasPrevPage,
	}
}
