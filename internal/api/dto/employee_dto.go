package dto

import (
	"time"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// EmployeeRequest payload for create/update.
type EmployeeRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	IsActive   *bool  `json:"is_active"`
}

// EmployeeResponse response.
type EmployeeResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// EmployeeStatusResponse pairs an employee with the derived snapshot.
type EmployeeStatusResponse struct {
	EmployeeResponse
	Status         domain.Status     `json:"status"`
	ClockInTime    string            `json:"clock_in_time,omitempty"`
	LastAction     *domain.EventKind `json:"last_action,omitempty"`
	LastActionTime *time.Time        `json:"last_action_time,omitempty"`
}

// StatsResponse carries dashboard counters.
type StatsResponse struct {
	ActiveEmployees   int `json:"active_employees"`
	PresentToday      int `json:"present_today"`
	OnBreak           int `json:"on_break"`
	MessagesProcessed int `json:"messages_processed"`
}
