package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/contact-service/internal/api/dto"
	"github.com/spec-kit/contact-service/internal/service"
)

// AuthHandler exposes login and registration.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /api/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.service.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Registration successful", dto.NewAuthResponse(result)))
}

// Login POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Login successful", dto.NewAuthResponse(result)))
}
