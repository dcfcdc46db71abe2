// Package attendance derives presence status from the attendance event log.
package attendance

import (
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

const clockLayout = "15:04"

// Resolve projects the latest attendance event into a status snapshot.
// Only the latest event matters; earlier history never influences the
// current status. A nil event means the employee has no history and is
// absent. A break_end counts as a fresh clock-in for display purposes.
func Resolve(latest *domain.AttendanceEvent) domain.StatusSnapshot {
	if latest == nil {
		return domain.StatusSnapshot{Status: domain.StatusAbsent}
	}

	kind := latest.Kind
	ts := latest.Timestamp
	snap := domain.StatusSnapshot{
		LastAction:     &kind,
		LastActionTime: &ts,
	}

	switch latest.Kind {
	case domain.EventClockIn, domain.EventBreakEnd:
		snap.Status = domain.StatusWorking
		snap.ClockInTime = latest.Timestamp.Format(clockLayout)
	case domain.EventBreakStart:
		snap.Status = domain.StatusOnBreak
	case domain.EventClockOut:
		snap.Status = domain.StatusOffDuty
	default:
		snap.Status = domain.StatusAbsent
	}
	return snap
}

var allowedCommands = map[domain.Status][]domain.EventKind{
	domain.StatusAbsent:  {domain.EventClockIn},
	domain.StatusOffDuty: {domain.EventClockIn},
	domain.StatusWorking: {domain.EventBreakStart, domain.EventClockOut},
	domain.StatusOnBreak: {domain.EventBreakEnd, domain.EventClockOut},
}

// AllowsCommand reports whether the given event kind is a valid transition
// out of the current status. Disallowed edges: double clock-in, break
// commands while off duty or absent, clock-out without a prior clock-in.
func AllowsCommand(current domain.Status, kind domain.EventKind) bool {
	for _, candidate := range allowedCommands[current] {
		if candidate == kind {
			return true
		}
	}
	return false
}
