package model

import "testing"

func TestParseAppointmentStatus(t *testing.T) {
	for _, valid := range []string{"scheduled", "confirmed", "completed", "cancelled", "no_show"} {
		status, ok := ParseAppointmentStatus(valid)
		if !ok || string(status) != valid {
			t.Errorf("ParseAppointmentStatus(%q) = %q, %v", valid, status, ok)
		}
	}
	for _, invalid := range []string{"", "Scheduled", "done", "noshow"} {
		if _, ok := ParseAppointmentStatus(invalid); ok {
			t.Errorf("ParseAppointmentStatus(%q) accepted", invalid)
		}
	}
}

func TestCanCancel(t *testing.T) {
	if !(Appointment{Status: StatusScheduled}).CanCancel() {
		t.Error("scheduled appointment should be cancellable")
	}
	for _, status := range []AppointmentStatus{StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		if (Appointment{Status: status}).CanCancel() {
			t.Errorf("%s appointment should not be cancellable", status)
		}
	}
}
