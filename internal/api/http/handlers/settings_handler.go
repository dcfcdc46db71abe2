package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/api/dto"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/service"
	apperrors "github.com/jtalmeidaAdvir/WhatsappTimeTracker/pkg/util"
)

// SettingsHandler manages runtime settings endpoints.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// List GET /api/settings.
func (h *SettingsHandler) List(c *fiber.Ctx) error {
	settings, err := h.settings.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.SettingResponse, 0, len(settings))
	for _, setting := range settings {
		items = append(items, settingResponse(&setting))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/settings/:key.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	setting, err := h.settings.Get(c.UserContext(), c.Params("key"))
	if err != nil {
		return err
	}
	if setting == nil {
		return apperrors.NewNotFound("setting", fiber.Map{"key": c.Params("key")})
	}
	return c.JSON(fiber.Map{"data": settingResponse(setting)})
}

// Set PUT /api/settings/:key.
func (h *SettingsHandler) Set(c *fiber.Ctx) error {
	var req dto.SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	setting, err := h.settings.Set(c.UserContext(), c.Params("key"), req.Value, req.Type)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settingResponse(setting)})
}

func settingResponse(setting *domain.Setting) dto.SettingResponse {
	return dto.SettingResponse{
		Key:       setting.Key,
		Value:     setting.Value,
		Type:      setting.Type,
		UpdatedAt: setting.UpdatedAt,
	}
}
