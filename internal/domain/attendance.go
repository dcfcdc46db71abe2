package domain

import "time"

// EventKind enumerates the canonical attendance actions.
type EventKind string

const (
	EventClockIn    EventKind = "clock_in"
	EventClockOut   EventKind = "clock_out"
	EventBreakStart EventKind = "break_start"
	EventBreakEnd   EventKind = "break_end"
)

// Status enumerates derived presence states. Status is a projection of the
// most recent attendance event and is never persisted.
type Status string

const (
	StatusWorking Status = "working"
	StatusOnBreak Status = "on_break"
	StatusOffDuty Status = "off_duty"
	StatusAbsent  Status = "absent"
)

// AttendanceEvent is an immutable fact in the per-employee append-only log.
type AttendanceEvent struct {
	ID         int64
	EmployeeID int64
	Kind       EventKind
	Timestamp  time.Time
}

// StatusSnapshot is the derived presence view of a single employee.
// ClockInTime is the wall-clock time of day ("15:04") of the event that put
// the employee into the working state; empty otherwise.
type StatusSnapshot struct {
	Status         Status
	ClockInTime    string
	LastAction     *EventKind
	LastActionTime *time.Time
}

// Stats aggregates dashboard counters across the roster.
type Stats struct {
	ActiveEmployees   int
	PresentToday      int
	OnBreak           int
	MessagesProcessed int
}
