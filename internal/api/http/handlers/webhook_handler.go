package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/api/dto"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/service"
	apperrors "github.com/jtalmeidaAdvir/WhatsappTimeTracker/pkg/util"
)

// WebhookHandler accepts WhatsApp gateway deliveries and dashboard
// simulations. Both run the same pipeline.
type WebhookHandler struct {
	attendance *service.AttendanceService
}

// NewWebhookHandler constructs handler.
func NewWebhookHandler(attendance *service.AttendanceService) *WebhookHandler {
	return &WebhookHandler{attendance: attendance}
}

// Receive POST /api/whatsapp/webhook and POST /api/whatsapp/simulate.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var req dto.WebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return apperrors.NewValidationError("phone required", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}

	msg, err := h.attendance.Receive(c.UserContext(), req.MessageID, strings.TrimSpace(req.Phone), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": messageResponse(msg)})
}

func messageResponse(msg *domain.InboundMessage) dto.MessageResponse {
	return dto.MessageResponse{
		ID:         msg.ID,
		ExternalID: msg.ExternalID,
		Phone:      msg.Phone,
		Body:       msg.Body,
		Command:    msg.Command,
		Processed:  msg.Processed,
		Response:   msg.Response,
		ReceivedAt: msg.ReceivedAt,
	}
}
