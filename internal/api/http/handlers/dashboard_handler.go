package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/api/dto"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/repository"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/service"
	apperrors "github.com/jtalmeidaAdvir/WhatsappTimeTracker/pkg/util"
)

// DashboardHandler serves the read-only presence and activity views.
type DashboardHandler struct {
	attendance *service.AttendanceService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(attendance *service.AttendanceService) *DashboardHandler {
	return &DashboardHandler{attendance: attendance}
}

// EmployeeStatuses GET /api/employees/status.
func (h *DashboardHandler) EmployeeStatuses(c *fiber.Ctx) error {
	statuses, err := h.attendance.AllEmployeeStatuses(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeStatusResponse, 0, len(statuses))
	for i := range statuses {
		items = append(items, employeeStatusResponse(&statuses[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// EmployeeStatus GET /api/employees/:id/status.
func (h *DashboardHandler) EmployeeStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid employee id", nil)
	}
	status, err := h.attendance.EmployeeStatus(c.UserContext(), id)
	if err != nil {
		return err
	}
	resp := employeeStatusResponse(status)
	return c.JSON(fiber.Map{"data": resp})
}

// Stats GET /api/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.attendance.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		ActiveEmployees:   stats.ActiveEmployees,
		PresentToday:      stats.PresentToday,
		OnBreak:           stats.OnBreak,
		MessagesProcessed: stats.MessagesProcessed,
	}})
}

// Attendance GET /api/attendance.
func (h *DashboardHandler) Attendance(c *fiber.Ctx) error {
	filter := repository.AttendanceFilter{Limit: parseInt(c.Query("limit"), 100)}
	if idStr := c.Query("employee_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid employee_id", nil)
		}
		filter.EmployeeID = &id
	}
	if dateStr := c.Query("date"); dateStr != "" {
		day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return apperrors.NewValidationError("invalid date, want YYYY-MM-DD", nil)
		}
		filter.Day = &day
	}

	records, err := h.attendance.AttendanceRecords(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AttendanceEventResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.AttendanceEventResponse{
			ID:         record.ID,
			EmployeeID: record.EmployeeID,
			Kind:       record.Kind,
			Timestamp:  record.Timestamp,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// RecentMessages GET /api/messages/recent.
func (h *DashboardHandler) RecentMessages(c *fiber.Ctx) error {
	messages, err := h.attendance.RecentMessages(c.UserContext(), parseInt(c.Query("limit"), 10))
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, messageResponse(&messages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func employeeStatusResponse(entry *domain.EmployeeWithStatus) dto.EmployeeStatusResponse {
	return dto.EmployeeStatusResponse{
		EmployeeResponse: employeeResponse(&entry.Employee),
		Status:           entry.Snapshot.Status,
		ClockInTime:      entry.Snapshot.ClockInTime,
		LastAction:       entry.Snapshot.LastAction,
		LastActionTime:   entry.Snapshot.LastActionTime,
	}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
