package service

import (
	"context"
	"strings"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/repository"
	apperrors "github.com/jtalmeidaAdvir/WhatsappTimeTracker/pkg/util"
)

// RosterService manages the employee roster via administrative actions.
type RosterService struct {
	employees repository.EmployeeRepository
}

// NewRosterService constructs the service.
func NewRosterService(employees repository.EmployeeRepository) *RosterService {
	return &RosterService{employees: employees}
}

// EmployeeInput describes create/update payloads.
type EmployeeInput struct {
	Name       string
	Phone      string
	Department string
	IsActive   *bool
}

// CreateEmployee registers a new roster member.
func (s *RosterService) CreateEmployee(ctx context.Context, input EmployeeInput) (*domain.Employee, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, apperrors.NewValidationError("name and phone required", nil)
	}

	existing, err := s.employees.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("phone already registered", map[string]any{"phone": phone})
	}

	employee := &domain.Employee{
		Name:       name,
		Phone:      phone,
		Department: strings.TrimSpace(input.Department),
		IsActive:   true,
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// UpdateEmployee applies partial changes to an existing employee.
func (s *RosterService) UpdateEmployee(ctx context.Context, id int64, input EmployeeInput) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		employee.Name = name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" && phone != employee.Phone {
		existing, err := s.employees.GetByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != employee.ID {
			return nil, apperrors.NewConflict("phone already registered", map[string]any{"phone": phone})
		}
		employee.Phone = phone
	}
	if dept := strings.TrimSpace(input.Department); dept != "" {
		employee.Department = dept
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// GetEmployee fetches one roster member.
func (s *RosterService) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// ListEmployees returns the whole roster.
func (s *RosterService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}
