package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/contact-service/internal/api/dto"
	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/service"
	"github.com/spec-kit/contact-service/pkg/util/errorutil"
)

// ContactsHandler manages the owner-scoped contact endpoints.
type ContactsHandler struct {
	service *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contactService *service.ContactService) *ContactsHandler {
	return &ContactsHandler{service: contactService}
}

// Create POST /api/contacts.
func (h *ContactsHandler) Create(c *fiber.Ctx, identity domain.Identity) error {
	var req dto.ContactRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	contact, err := h.service.Create(c.UserContext(), identity, req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Contact created successfully", dto.NewContactResponse(contact)))
}

// List GET /api/contacts.
func (h *ContactsHandler) List(c *fiber.Ctx, identity domain.Identity) error {
	filter := service.ListFilter{
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Page:   c.QueryInt("page", service.DefaultPage),
		Limit:  c.QueryInt("limit", service.DefaultLimit),
	}

	page, err := h.service.List(c.UserContext(), identity, filter)
	if err != nil {
		return err
	}

	resp := dto.OK("Contacts retrieved successfully", dto.NewContactList(page.Contacts))
	resp.Pagination = dto.NewPaginationResponse(page.Pagination)
	return c.JSON(resp)
}

// Get GET /api/contacts/:id.
func (h *ContactsHandler) Get(c *fiber.Ctx, identity domain.Identity) error {
	id, err := h.contactID(c)
	if err != nil {
		return err
	}

	contact, err := h.service.Get(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Contact retrieved successfully", dto.NewContactResponse(contact)))
}

// Update PUT /api/contacts/:id.
func (h *ContactsHandler) Update(c *fiber.Ctx, identity domain.Identity) error {
	id, err := h.contactID(c)
	if err != nil {
		return err
	}

	var req dto.ContactRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	contact, err := h.service.Update(c.UserContext(), identity, id, req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Contact updated successfully", dto.NewContactResponse(contact)))
}

// Delete DELETE /api/contacts/:id.
func (h *ContactsHandler) Delete(c *fiber.Ctx, identity domain.Identity) error {
	id, err := h.contactID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), identity, id); err != nil {
		return err
	}
	return c.JSON(dto.OK("Contact deleted successfully", nil))
}

func (h *ContactsHandler) contactID(c *fiber.Ctx) (string, error) {
	id := strings.Clone(c.Params("id"))
	if !h.service.ValidID(id) {
		return "", errorutil.NewValidationError("Validation failed", []errorutil.FieldError{
			{Field: "id", Message: "Invalid contact ID format"},
		})
	}
	return id, nil
}

// parseBody decodes a JSON body. An empty body decodes as an empty object.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return errorutil.NewBadRequest(errorutil.CodeBadRequest, "Invalid request body")
	}
	return nil
}
