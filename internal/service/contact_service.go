package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/events"
	"github.com/spec-kit/contact-service/internal/repository"
	"github.com/spec-kit/contact-service/internal/validation"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

const contactResource = "Contact"

// ContactInput carries the fields of a new contact.
type ContactInput = validation.ContactInput

// ContactPatch carries the fields to change; unset fields are left alone.
type ContactPatch = validation.ContactInput

// ListFilter narrows a contact listing. Zero Page or Limit means the default.
type ListFilter struct {
	Type   string
	Search string
	Page   int
	Limit  int
}

// ContactService implements the owner-scoped contact operations.
type ContactService struct {
	contacts   repository.ContactRepository
	validator  *validation.Validator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContactService builds the service. dispatcher may be nil.
func NewContactService(contacts repository.ContactRepository, validator *validation.Validator, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	return &ContactService{
		contacts:   contacts,
		validator:  validator,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create validates input and stores a new contact for identity.
func (s *ContactService) Create(ctx context.Context, identity domain.Identity, input ContactInput) (*domain.Contact, error) {
	fields, fieldErrs := s.validator.Contact(input, false)
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if err := s.ensureEmailFree(ctx, identity.ID, *fields.Email, ""); err != nil {
		return nil, err
	}

	contact := &domain.Contact{OwnerID: identity.ID}
	fields.Apply(contact)

	if err := s.contacts.Create(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateContactEmail()
		}
		return nil, storeError("create contact", err)
	}

	s.publish(ctx, events.NewEvent(events.EventContactCreated, identity.ID, contact.ID,
		events.ContactCreatedPayload{Type: contact.Type}))
	return contact, nil
}

// List returns one page of the caller's contacts ordered by name.
func (s *ContactService) List(ctx context.Context, identity domain.Identity, filter ListFilter) (*domain.ContactPage, error) {
	page := filter.Page
	if page <= 0 {
		page = DefaultPage
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// Pages past the addressable range read as an empty page beyond the end.
	skip := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		skip = (page - 1) * limit
	}

	query := repository.ContactFilter{OwnerID: identity.ID, Limit: limit, Offset: skip}
	if t, ok := domain.ParseContactType(filter.Type); ok {
		query.Type = &t
	}
	if filter.Search != "" {
		search := filter.Search
		query.Search = &search
	}

	var (
		total    int64
		contacts []domain.Contact
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.contacts.Count(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = s.contacts.List(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeError("list contacts", err)
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}

	return &domain.ContactPage{
		Contacts: contacts,
		Pagination: domain.Pagination{
			CurrentPage:   page,
			TotalPages:    int(math.Ceil(float64(total) / float64(limit))),
			TotalContacts: total,
			HasNextPage:   int64(skip+len(contacts)) < total,
			HasPrevPage:   page > 1,
		},
	}, nil
}

// Get returns one of the caller's contacts.
func (s *ContactService) Get(ctx context.Context, identity domain.Identity, id string) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, identity.ID, id)
	if err != nil {
		return nil, s.lookupError("get contact", id, err)
	}
	return contact, nil
}

// Update applies the supplied fields of patch to one of the caller's contacts.
func (s *ContactService) Update(ctx context.Context, identity domain.Identity, id string, patch ContactPatch) (*domain.Contact, error) {
	existing, err := s.contacts.GetByID(ctx, identity.ID, id)
	if err != nil {
		return nil, s.lookupError("get contact", id, err)
	}

	fields, fieldErrs := s.validator.Contact(patch, true)
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if fields.Email != nil && *fields.Email != existing.Email {
		if err := s.ensureEmailFree(ctx, identity.ID, *fields.Email, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.contacts.Update(ctx, identity.ID, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateOtherContactEmail()
		}
		return nil, s.lookupError("update contact", id, err)
	}

	s.publish(ctx, events.NewEvent(events.EventContactUpdated, identity.ID, id,
		events.ContactUpdatedPayload{Fields: fields.Names()}))
	return updated, nil
}

// Delete removes one of the caller's contacts.
func (s *ContactService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if err := s.contacts.Delete(ctx, identity.ID, id); err != nil {
		return s.lookupError("delete contact", id, err)
	}
	s.publish(ctx, events.NewEvent(events.EventContactDeleted, identity.ID, id, nil))
	return nil
}

// ValidID reports whether id is a well-formed contact identifier for the configured store.
func (s *ContactService) ValidID(id string) bool {
	return s.contacts.ValidID(id)
}

func (s *ContactService) ensureEmailFree(ctx context.Context, ownerID, email, excludeID string) error {
	_, err := s.contacts.FindByEmail(ctx, ownerID, email, excludeID)
	switch {
	case err == nil:
		if excludeID != "" {
			return duplicateOtherContactEmail()
		}
		return duplicateContactEmail()
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return storeError("find contact by email", err)
	}
}

func (s *ContactService) lookupError(op, id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Resource: contactResource, ID: id}
	}
	return storeError(op, err)
}

func (s *ContactService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("contact event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("contact_id", event.ContactID),
			zap.Error(err))
	}
}

func duplicateContactEmail() *ConflictError {
	return &ConflictError{Reason: DuplicateEmail, Message: "A contact with this email already exists"}
}

func duplicateOtherContactEmail() *ConflictError {
	return &ConflictError{Reason: DuplicateEmail, Message: "Another contact with this email already exists"}
}
