package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/directory"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/interval"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/slots"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/storage"
)

type ScheduleHandler struct {
	repo   ScheduleStore
	dir    directory.Client
	logger *slog.Logger
}

func NewScheduleHandler(repo ScheduleStore, dir directory.Client, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{repo: repo, dir: dir, logger: logger}
}

type addTemplateRequest struct {
	Weekday     int    `json:"weekday"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable *bool  `json:"is_available"`
}

type addTemplateResponse struct {
	TemplateID string `json:"template_id"`
}

type templateItem struct {
	TemplateID  string `json:"template_id"`
	Weekday     int    `json:"weekday"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type removeTemplateRequest struct {
	TemplateID string `json:"template_id"`
}

// Add creates a weekly availability window for the acting psychologist.
// Overlapping an existing available window on the same weekday is a
// conflict; touching endpoints are fine.
func (h *ScheduleHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}

	var req addTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if req.Weekday < 0 || req.Weekday > 6 {
		http.Error(w, "weekday must be 0 (Sunday) through 6 (Saturday)", http.StatusBadRequest)
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
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	existing, err := h.repo.ListTemplatesForWeekdayForUpdate(ctx, tx, profile.ID, time.Weekday(req.Weekday))
	if err != nil {
		http.Error(w, "failed to load schedule", http.StatusInternalServerError)
		return
	}
	if available {
		for _, tpl := range existing {
			if !tpl.IsAvailable {
				continue
			}
			if interval.OverlapsMinutes(startMinute, endMinute, tpl.StartMinute, tpl.EndMinute) {
				http.Error(w, "schedule window overlaps an existing one", http.StatusConflict)
				return
			}
		}
	}

	id, err := h.repo.CreateTemplate(ctx, tx, &model.ScheduleTemplate{
		ProviderID:  profile.ID,
		Weekday:     time.Weekday(req.Weekday),
		StartMinute: startMinute,
		EndMinute:   endMinute,
		IsAvailable: available,
	})
	if err != nil {
		http.Error(w, "failed to create schedule window", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, addTemplateResponse{TemplateID: id})
}

func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}

	templates, err := h.repo.ListTemplates(ctx, profile.ID)
	if err != nil {
		http.Error(w, "failed to list schedule", http.StatusInternalServerError)
		return
	}
	items := make([]templateItem, 0, len(templates))
	for _, tpl := range templates {
		items = append(items, templateItem{
			TemplateID:  tpl.ID,
			Weekday:     int(tpl.Weekday),
			StartTime:   slots.FormatClock(tpl.StartMinute),
			EndTime:     slots.FormatClock(tpl.EndMinute),
			IsAvailable: tpl.IsAvailable,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ScheduleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}

	var req removeTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.TemplateID = strings.TrimSpace(req.TemplateID)
	if req.TemplateID == "" {
		http.Error(w, "template_id required", http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteTemplate(ctx, profile.ID, req.TemplateID); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "schedule window not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to remove schedule window", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
