package handler

import (
	"coursecraft/internal/domain"
	"coursecraft/internal/dto"
	"coursecraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles signup and login requests.
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body.")
	}

	if err := h.service.Signup(c.Context(), &req); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StatusResponse{
		Status:  "success",
		Message: "User registered successfully!",
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body.")
	}

	resp, err := h.service.Login(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
