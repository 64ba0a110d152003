package model

import "time"

// ScheduleTemplate is a provider's recurring weekly availability window.
// Start/End are minutes from midnight; the window is half-open [Start, End).
type ScheduleTemplate struct {
	ID          string
	ProviderID  string
	Weekday     time.Weekday
	StartMinute int
	EndMinute   int
	IsAvailable bool
	CreatedAt   time.Time
}

// TimeSlot is a concrete one-hour bookable instance materialized from a
// template (or inserted manually by the provider). StartAt is the slot
// instant in UTC; (ProviderID, StartAt) is unique.
type TimeSlot struct {
	ID          string
	ProviderID  string
	StartAt     time.Time
	EndAt       time.Time
	IsAvailable bool
	IsBooked    bool
	BookedBy    *string
	CreatedAt   time.Time
}
