package domain

import "time"

// Employee is a member of the roster allowed to register attendance.
// The pipeline never creates employees; they are managed administratively.
type Employee struct {
	ID         int64
	Name       string
	Phone      string
	Department string
	IsActive   bool
	CreatedAt  time.Time
}

// EmployeeWithStatus pairs an employee with their derived presence snapshot
// for dashboard consumption.
type EmployeeWithStatus struct {
	Employee
	Snapshot StatusSnapshot
}
