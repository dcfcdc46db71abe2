package dto

import (
	"time"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// WebhookRequest is the inbound Z-API style delivery payload.
type WebhookRequest struct {
	MessageID string `json:"messageId"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// MessageResponse response.
type MessageResponse struct {
	ID         int64             `json:"id"`
	ExternalID string            `json:"external_id"`
	Phone      string            `json:"phone"`
	Body       string            `json:"body"`
	Command    *domain.EventKind `json:"command,omitempty"`
	Processed  bool              `json:"processed"`
	Response   *string           `json:"response,omitempty"`
	ReceivedAt time.Time         `json:"received_at"`
}

// AttendanceEventResponse response.
type AttendanceEventResponse struct {
	ID         int64            `json:"id"`
	EmployeeID int64            `json:"employee_id"`
	Kind       domain.EventKind `json:"kind"`
	Timestamp  time.Time        `json:"timestamp"`
}
