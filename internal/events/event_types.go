package events

import (
	"time"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAttendanceRecorded EventType = "attendance_recorded"
	EventMessageRejected    EventType = "message_rejected"
)

// Event represents a domain event emitted by the pipeline.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MessageID int64       `json:"message_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AttendanceRecordedPayload payload.
type AttendanceRecordedPayload struct {
	EmployeeID int64            `json:"employee_id"`
	Phone      string           `json:"phone"`
	Kind       domain.EventKind `json:"kind"`
	OccurredAt time.Time        `json:"occurred_at"`
	Response   string           `json:"response"`
}

// MessageRejectedPayload payload. Reason is one of unknown_sender,
// unrecognized_command, invalid_transition.
type MessageRejectedPayload struct {
	Phone    string `json:"phone"`
	Reason   string `json:"reason"`
	Response string `json:"response"`
}
