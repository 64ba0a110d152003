package model

import "time"

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// ParseAppointmentStatus maps a wire value onto a known status.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}

type Appointment struct {
	ID          string
	ProviderID  string
	RequesterID string
	StartAt     time.Time
	Notes       string
	Status      AppointmentStatus
	CancelledAt *time.Time
	CreatedAt   time.Time
}

// CanCancel reports whether the appointment may still be cancelled.
// Only a scheduled appointment cancels; everything else is final or
// already in the provider's hands.
func (a Appointment) CanCancel() bool {
	return a.Status == StatusScheduled
}
