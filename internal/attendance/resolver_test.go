package attendance_test

import (
	"testing"
	"time"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/attendance"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

func TestResolveNoHistory(t *testing.T) {
	snap := attendance.Resolve(nil)
	if snap.Status != domain.StatusAbsent {
		t.Fatalf("status = %s, want %s", snap.Status, domain.StatusAbsent)
	}
	if snap.ClockInTime != "" {
		t.Errorf("ClockInTime = %q, want empty", snap.ClockInTime)
	}
	if snap.LastAction != nil || snap.LastActionTime != nil {
		t.Errorf("expected no last action for empty history")
	}
}

func TestResolveByLatestKind(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)
	cases := []struct {
		kind        domain.EventKind
		wantStatus  domain.Status
		wantClockIn string
	}{
		{domain.EventClockIn, domain.StatusWorking, "09:30"},
		{domain.EventBreakEnd, domain.StatusWorking, "09:30"},
		{domain.EventBreakStart, domain.StatusOnBreak, ""},
		{domain.EventClockOut, domain.StatusOffDuty, ""},
	}
	for _, tc := range cases {
		ev := &domain.AttendanceEvent{ID: 1, EmployeeID: 7, Kind: tc.kind, Timestamp: ts}
		snap := attendance.Resolve(ev)
		if snap.Status != tc.wantStatus {
			t.Errorf("Resolve(%s): status = %s, want %s", tc.kind, snap.Status, tc.wantStatus)
		}
		if snap.ClockInTime != tc.wantClockIn {
			t.Errorf("Resolve(%s): ClockInTime = %q, want %q", tc.kind, snap.ClockInTime, tc.wantClockIn)
		}
		if snap.LastAction == nil || *snap.LastAction != tc.kind {
			t.Errorf("Resolve(%s): LastAction does not mirror latest kind", tc.kind)
		}
		if snap.LastActionTime == nil || !snap.LastActionTime.Equal(ts) {
			t.Errorf("Resolve(%s): LastActionTime does not mirror latest timestamp", tc.kind)
		}
	}
}

func TestAllowsCommand(t *testing.T) {
	cases := []struct {
		status domain.Status
		kind   domain.EventKind
		want   bool
	}{
		{domain.StatusAbsent, domain.EventClockIn, true},
		{domain.StatusAbsent, domain.EventBreakEnd, false},
		{domain.StatusAbsent, domain.EventClockOut, false},
		{domain.StatusWorking, domain.EventClockIn, false},
		{domain.StatusWorking, domain.EventBreakStart, true},
		{domain.StatusWorking, domain.EventClockOut, true},
		{domain.StatusOnBreak, domain.EventBreakEnd, true},
		{domain.StatusOnBreak, domain.EventBreakStart, false},
		{domain.StatusOnBreak, domain.EventClockOut, true},
		{domain.StatusOffDuty, domain.EventClockIn, true},
		{domain.StatusOffDuty, domain.EventBreakStart, false},
	}
	for _, tc := range cases {
		if got := attendance.AllowsCommand(tc.status, tc.kind); got != tc.want {
			t.Errorf("AllowsCommand(%s, %s) = %v, want %v", tc.status, tc.kind, got, tc.want)
		}
	}
}
