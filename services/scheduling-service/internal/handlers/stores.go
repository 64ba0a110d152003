package handlers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/outbox"
)

// Store interfaces name what each handler needs from persistence. The
// pgx repositories in internal/storage satisfy them.

type ScheduleStore interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	ListTemplates(ctx context.Context, providerID string) ([]model.ScheduleTemplate, error)
	ListTemplatesForWeekdayForUpdate(ctx context.Context, tx pgx.Tx, providerID string, weekday time.Weekday) ([]model.ScheduleTemplate, error)
	CreateTemplate(ctx context.Context, tx pgx.Tx, tpl *model.ScheduleTemplate) (string, error)
	DeleteTemplate(ctx context.Context, providerID, templateID string) error
}

type SlotStore interface {
	InsertSlots(ctx context.Context, providerID string, starts []time.Time) (int, error)
	ListSlotsInRange(ctx context.Context, providerID string, from, to time.Time) ([]model.TimeSlot, error)
	ListOpenSlots(ctx context.Context, providerID string, from, to time.Time) ([]model.TimeSlot, error)
	ClaimSlot(ctx context.Context, tx pgx.Tx, providerID string, startAt time.Time, requesterID string) (model.TimeSlot, error)
	ReleaseSlot(ctx context.Context, tx pgx.Tx, providerID string, startAt time.Time) error
	DeleteSlot(ctx context.Context, providerID, slotID string) error
}

type AppointmentStore interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Create(ctx context.Context, tx pgx.Tx, appt *model.Appointment) (string, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, appointmentID string) (model.Appointment, error)
	Cancel(ctx context.Context, tx pgx.Tx, appointmentID string) (time.Time, error)
	UpdateStatus(ctx context.Context, appointmentID, providerID string, status model.AppointmentStatus) error
	ListByRequester(ctx context.Context, requesterID string, limit int) ([]model.Appointment, error)
	ListByProvider(ctx context.Context, providerID string, limit int) ([]model.Appointment, error)
	ExistsForRequesterAndProvider(ctx context.Context, requesterID, providerID string) (bool, error)
}

type ReviewStore interface {
	Create(ctx context.Context, review *model.Review) (string, error)
	ListApprovedByProvider(ctx context.Context, providerID string, limit int) ([]model.Review, error)
	ListByProvider(ctx context.Context, providerID string, limit int) ([]model.Review, error)
	SetModeration(ctx context.Context, reviewID, providerID string, approved bool) error
	Delete(ctx context.Context, reviewID, providerID string) error
}

type OutboxStore interface {
	Insert(ctx context.Context, tx pgx.Tx, evt outbox.Event) error
}
