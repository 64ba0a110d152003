package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/directory"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/identity"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/outbox"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/storage"
)

type BookingHandler struct {
	apptRepo   AppointmentStore
	slotRepo   SlotStore
	outboxRepo OutboxStore
	dir        directory.Client
	logger     *slog.Logger

	// releaseSlotOnCancel reopens the underlying slot when an
	// appointment is cancelled. Off by default: a late cancellation
	// should not silently re-advertise the hour.
	releaseSlotOnCancel bool
}

func NewBookingHandler(apptRepo AppointmentStore, slotRepo SlotStore, outboxRepo OutboxStore, dir directory.Client, logger *slog.Logger, releaseSlotOnCancel bool) *BookingHandler {
	return &BookingHandler{
		apptRepo:            apptRepo,
		slotRepo:            slotRepo,
		outboxRepo:          outboxRepo,
		dir:                 dir,
		logger:              logger,
		releaseSlotOnCancel: releaseSlotOnCancel,
	}
}

type createBookingRequest struct {
	ProviderID string `json:"provider_id"`
	StartTime  string `json:"start_time"`
	Notes      string `json:"notes"`
}

type createBookingResponse struct {
	AppointmentID string `json:"appointment_id"`
	StartTime     string `json:"start_time"`
}

type cancelBookingRequest struct {
	AppointmentID string `json:"appointment_id"`
}

type cancelBookingResponse struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
	CancelledAt   string `json:"cancelled_at"`
}

type updateStatusRequest struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
}

type appointmentItem struct {
	AppointmentID string `json:"appointment_id"`
	ProviderID    string `json:"provider_id"`
	RequesterID   string `json:"requester_id"`
	StartTime     string `json:"start_time"`
	Notes         string `json:"notes,omitempty"`
	Status        string `json:"status"`
	CancelledAt   string `json:"cancelled_at,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// Create books an open slot for the authenticated user. The slot claim
// and the appointment insert commit together; losing the race for the
// slot is a conflict, not an error.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ProviderID = strings.TrimSpace(req.ProviderID)
	if req.ProviderID == "" {
		http.Error(w, "provider_id required", http.StatusBadRequest)
		return
	}
	startAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartTime))
	if err != nil {
		http.Error(w, "start_time must be RFC3339", http.StatusBadRequest)
		return
	}

	tx, err := h.apptRepo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	slot, err := h.slotRepo.ClaimSlot(ctx, tx, req.ProviderID, startAt.UTC(), actor.UserID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "slot is not available", http.StatusConflict)
			return
		}
		http.Error(w, "failed to claim slot", http.StatusInternalServerError)
		return
	}

	appt := &model.Appointment{
		ProviderID:  slot.ProviderID,
		RequesterID: actor.UserID,
		StartAt:     slot.StartAt,
		Notes:       strings.TrimSpace(req.Notes),
		Status:      model.StatusScheduled,
	}
	id, err := h.apptRepo.Create(ctx, tx, appt)
	if err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "slot is not available", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}
	appt.ID = id

	evt, err := outbox.AppointmentBooked(*appt, h.recipients(ctx, actor.Email, slot.ProviderID))
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, evt); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, createBookingResponse{
		AppointmentID: id,
		StartTime:     slot.StartAt.UTC().Format(time.RFC3339),
	})
}

// Cancel cancels a scheduled appointment. Allowed for the requester and
// for the psychologist it belongs to. Only a scheduled appointment
// cancels; a second cancel is a conflict like any other final status.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req cancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	if req.AppointmentID == "" {
		http.Error(w, "appointment_id required", http.StatusBadRequest)
		return
	}

	tx, err := h.apptRepo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := h.apptRepo.GetForUpdate(ctx, tx, req.AppointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load appointment", http.StatusInternalServerError)
		return
	}
	if !h.mayTouch(ctx, actor, appt) {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return
	}

	if !appt.CanCancel() {
		http.Error(w, "appointment cannot be cancelled", http.StatusConflict)
		return
	}

	cancelledAt, err := h.apptRepo.Cancel(ctx, tx, appt.ID)
	if err != nil {
		http.Error(w, "failed to cancel appointment", http.StatusInternalServerError)
		return
	}

	if h.releaseSlotOnCancel {
		if err := h.slotRepo.ReleaseSlot(ctx, tx, appt.ProviderID, appt.StartAt); err != nil {
			http.Error(w, "failed to release slot", http.StatusInternalServerError)
			return
		}
	}

	appt.Status = model.StatusCancelled
	// Only the requester's own email is known here; a provider-side
	// cancellation still produces the in-app notification.
	requesterEmail := ""
	if actor.UserID == appt.RequesterID {
		requesterEmail = actor.Email
	}
	evt, err := outbox.AppointmentCancelled(appt, h.recipients(ctx, requesterEmail, appt.ProviderID))
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, evt); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	h.writeCancelResponse(w, appt.ID, cancelledAt.UTC())
}

// UpdateStatus lets the psychologist move an appointment to any valid
// status (confirmed, completed, no_show, ...).
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	if req.AppointmentID == "" {
		http.Error(w, "appointment_id required", http.StatusBadRequest)
		return
	}
	status, ok := model.ParseAppointmentStatus(strings.TrimSpace(req.Status))
	if !ok {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if err := h.apptRepo.UpdateStatus(ctx, req.AppointmentID, profile.ID, status); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List returns the caller's appointments: the ones they booked, or the
// ones on their calendar when acting as a psychologist.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	limit := listLimit(r)

	var appts []model.Appointment
	var err error
	if actor.IsProvider() {
		profile, found := requireProviderProfile(ctx, w, r, h.dir)
		if !found {
			return
		}
		appts, err = h.apptRepo.ListByProvider(ctx, profile.ID, limit)
	} else {
		appts, err = h.apptRepo.ListByRequester(ctx, actor.UserID, limit)
	}
	if err != nil {
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	items := make([]appointmentItem, 0, len(appts))
	for _, appt := range appts {
		item := appointmentItem{
			AppointmentID: appt.ID,
			ProviderID:    appt.ProviderID,
			RequesterID:   appt.RequesterID,
			StartTime:     appt.StartAt.UTC().Format(time.RFC3339),
			Notes:         appt.Notes,
			Status:        string(appt.Status),
			CreatedAt:     appt.CreatedAt.UTC().Format(time.RFC3339),
		}
		if appt.CancelledAt != nil {
			item.CancelledAt = appt.CancelledAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}

// recipients resolves delivery targets for the event. Lookup failures
// degrade to in-app-only delivery downstream, never block the booking.
func (h *BookingHandler) recipients(ctx context.Context, requesterEmail, providerID string) outbox.Recipients {
	rcpt := outbox.Recipients{RequesterEmail: requesterEmail}
	if profile, err := h.dir.ProfileByID(ctx, providerID); err == nil {
		rcpt.ProviderUserID = profile.UserID
	}
	return rcpt
}

// mayTouch checks the actor owns the appointment on either side.
func (h *BookingHandler) mayTouch(ctx context.Context, actor identity.Actor, appt model.Appointment) bool {
	if appt.RequesterID == actor.UserID {
		return true
	}
	if !actor.IsProvider() {
		return false
	}
	profile, err := h.dir.ProfileByUser(ctx, actor.UserID)
	if err != nil {
		return false
	}
	return profile.ID == appt.ProviderID
}

func (h *BookingHandler) writeCancelResponse(w http.ResponseWriter, appointmentID string, cancelledAt time.Time) {
	writeJSON(w, http.StatusOK, cancelBookingResponse{
		AppointmentID: appointmentID,
		Status:        string(model.StatusCancelled),
		CancelledAt:   cancelledAt.Format(time.RFC3339),
	})
}
