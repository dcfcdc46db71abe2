package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/api/dto"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/service"
	apperrors "github.com/jtalmeidaAdvir/WhatsappTimeTracker/pkg/util"
)

// AuthHandler exposes admin login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, expiresAt, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}})
}
