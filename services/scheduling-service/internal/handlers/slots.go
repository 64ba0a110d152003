package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/directory"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/slots"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/storage"
)

type SlotHandler struct {
	slotRepo     SlotStore
	scheduleRepo ScheduleStore
	dir          directory.Client
	logger       *slog.Logger
}

func NewSlotHandler(slotRepo SlotStore, scheduleRepo ScheduleStore, dir directory.Client, logger *slog.Logger) *SlotHandler {
	return &SlotHandler{slotRepo: slotRepo, scheduleRepo: scheduleRepo, dir: dir, logger: logger}
}

type generateSlotsResponse struct {
	Created int `json:"created"`
}

type addSlotRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type removeSlotRequest struct {
	SlotID string `json:"slot_id"`
}

type slotListItem struct {
	SlotID    string `json:"slot_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsBooked  bool   `json:"is_booked,omitempty"`
}

// Generate materializes the acting psychologist's weekly schedule into
// concrete slots over the booking horizon. Safe to call repeatedly;
// slots that already exist are skipped.
func (h *SlotHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}

	created, err := h.materialize(r, profile.ID)
	if err != nil {
		http.Error(w, "failed to generate slots", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, generateSlotsResponse{Created: created})
}

// Add materializes ad-hoc slots for one calendar day, stepping hourly
// through the given window. No weekly template required; instants that
// already carry a slot are skipped.
func (h *SlotHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}

	var req addSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	startMinute, err := slots.ParseClock(strings.TrimSpace(req.StartTime))
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}
	endMinute, err := slots.ParseClock(strings.TrimSpace(req.EndTime))
	if err != nil {
		http.Error(w, "invalid end_time", http.StatusBadRequest)
		return
	}
	if endMinute <= startMinute {
		http.Error(w, "end_time must be after start_time", http.StatusBadRequest)
		return
	}
	if !date.After(slots.Midnight(time.Now().UTC())) {
		http.Error(w, "date must be in the future", http.StatusBadRequest)
		return
	}

	starts := slots.ExpandDay(date, startMinute, endMinute)
	created, err := h.slotRepo.InsertSlots(ctx, profile.ID, starts)
	if err != nil {
		http.Error(w, "failed to create slots", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, generateSlotsResponse{Created: created})
}

func (h *SlotHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}

	var req removeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.SlotID = strings.TrimSpace(req.SlotID)
	if req.SlotID == "" {
		http.Error(w, "slot_id required", http.StatusBadRequest)
		return
	}

	if err := h.slotRepo.DeleteSlot(ctx, profile.ID, req.SlotID); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "slot not found or already booked", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to remove slot", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMine returns every slot (booked or not) in the horizon for the
// acting psychologist.
func (h *SlotHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}

	from, to := slots.Horizon(time.Now())
	list, err := h.slotRepo.ListSlotsInRange(ctx, profile.ID, from, to.AddDate(0, 0, 1))
	if err != nil {
		http.Error(w, "failed to list slots", http.StatusInternalServerError)
		return
	}
	items := make([]slotListItem, 0, len(list))
	for _, s := range list {
		items = append(items, slotListItem{
			SlotID:    s.ID,
			StartTime: s.StartAt.UTC().Format(time.RFC3339),
			EndTime:   s.EndAt.UTC().Format(time.RFC3339),
			IsBooked:  s.IsBooked,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// PublicList returns a provider's open slots over the booking horizon.
// The horizon is materialized on demand so clients always see slots for
// a schedule the psychologist just published.
func (h *SlotHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	if providerID == "" {
		http.Error(w, "provider_id required", http.StatusBadRequest)
		return
	}
	profile, err := h.dir.ProfileByID(ctx, providerID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "provider not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to resolve provider", http.StatusInternalServerError)
		return
	}
	if !profile.IsActive {
		http.Error(w, "provider not found", http.StatusNotFound)
		return
	}

	if _, err := h.materialize(r, profile.ID); err != nil {
		h.logger.Warn("on-demand slot materialization failed", "provider_id", profile.ID, "err", err)
	}

	from, to := slots.Horizon(time.Now())
	open, err := h.slotRepo.ListOpenSlots(ctx, profile.ID, from, to.AddDate(0, 0, 1))
	if err != nil {
		http.Error(w, "failed to list slots", http.StatusInternalServerError)
		return
	}
	items := make([]slotListItem, 0, len(open))
	for _, s := range open {
		items = append(items, slotListItem{
			SlotID:    s.ID,
			StartTime: s.StartAt.UTC().Format(time.RFC3339),
			EndTime:   s.EndAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *SlotHandler) materialize(r *http.Request, providerID string) (int, error) {
	ctx := r.Context()
	templates, err := h.scheduleRepo.ListTemplates(ctx, providerID)
	if err != nil {
		return 0, err
	}
	from, to := slots.Horizon(time.Now())
	starts := slots.Expand(templates, from, to)
	if len(starts) == 0 {
		return 0, nil
	}
	return h.slotRepo.InsertSlots(ctx, providerID, starts)
}
