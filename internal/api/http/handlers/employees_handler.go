package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/api/dto"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/service"
	apperrors "github.com/jtalmeidaAdvir/WhatsappTimeTracker/pkg/util"
)

// EmployeesHandler manages roster administration endpoints.
type EmployeesHandler struct {
	roster *service.RosterService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(roster *service.RosterService) *EmployeesHandler {
	return &EmployeesHandler{roster: roster}
}

// Create POST /api/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	employee, err := h.roster.CreateEmployee(c.UserContext(), service.EmployeeInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Department: req.Department,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": employeeResponse(employee)})
}

// Update PUT /api/employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid employee id", nil)
	}
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	employee, err := h.roster.UpdateEmployee(c.UserContext(), id, service.EmployeeInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Department: req.Department,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(employee)})
}

// Get GET /api/employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid employee id", nil)
	}
	employee, err := h.roster.GetEmployee(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(employee)})
}

// List GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.roster.ListEmployees(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, employeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func employeeResponse(employee *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:         employee.ID,
		Name:       employee.Name,
		Phone:      employee.Phone,
		Department: employee.Department,
		IsActive:   employee.IsActive,
		CreatedAt:  employee.CreatedAt,
	}
}
