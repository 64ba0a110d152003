package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/directory"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/storage"
)

type ReviewHandler struct {
	reviewRepo ReviewStore
	apptRepo   AppointmentStore
	dir        directory.Client
	logger     *slog.Logger
}

func NewReviewHandler(reviewRepo ReviewStore, apptRepo AppointmentStore, dir directory.Client, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviewRepo: reviewRepo, apptRepo: apptRepo, dir: dir, logger: logger}
}

type submitReviewRequest struct {
	ProviderID string `json:"provider_id"`
	Rating     int    `json:"rating"`
	Title      string `json:"title"`
	Comment    string `json:"comment"`
}

type submitReviewResponse struct {
	ReviewID string `json:"review_id"`
}

type reviewItem struct {
	ReviewID   string `json:"review_id"`
	ProviderID string `json:"provider_id"`
	Rating     int    `json:"rating"`
	Title      string `json:"title,omitempty"`
	Comment    string `json:"comment,omitempty"`
	IsApproved bool   `json:"is_approved,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type moderateReviewRequest struct {
	ReviewID string `json:"review_id"`
	Approved bool   `json:"approved"`
}

type deleteReviewRequest struct {
	ReviewID string `json:"review_id"`
}

// Submit creates a review for a psychologist the caller has actually
// seen. Reviews start unapproved and stay off the public listing until
// the psychologist approves them.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ProviderID = strings.TrimSpace(req.ProviderID)
	req.Comment = strings.TrimSpace(req.Comment)
	if req.ProviderID == "" || req.Comment == "" {
		http.Error(w, "provider_id and comment required", http.StatusBadRequest)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		http.Error(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	if _, err := h.dir.ProfileByID(ctx, req.ProviderID); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "provider not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to resolve provider", http.StatusInternalServerError)
		return
	}

	visited, err := h.apptRepo.ExistsForRequesterAndProvider(ctx, actor.UserID, req.ProviderID)
	if err != nil {
		http.Error(w, "failed to check appointment history", http.StatusInternalServerError)
		return
	}
	if !visited {
		http.Error(w, "reviews require a prior appointment with this provider", http.StatusForbidden)
		return
	}

	id, err := h.reviewRepo.Create(ctx, &model.Review{
		ProviderID:  req.ProviderID,
		RequesterID: actor.UserID,
		Rating:      req.Rating,
		Title:       strings.TrimSpace(req.Title),
		Comment:     req.Comment,
	})
	if err != nil {
		http.Error(w, "failed to create review", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, submitReviewResponse{ReviewID: id})
}

// PublicList returns approved, visible reviews for a provider.
func (h *ReviewHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	if providerID == "" {
		http.Error(w, "provider_id required", http.StatusBadRequest)
		return
	}
	reviews, err := h.reviewRepo.ListApprovedByProvider(r.Context(), providerID, listLimit(r))
	if err != nil {
		http.Error(w, "failed to list reviews", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reviewItems(reviews, false))
}

// ListMine returns every review of the acting psychologist, including
// the ones still awaiting moderation.
func (h *ReviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}
	reviews, err := h.reviewRepo.ListByProvider(ctx, profile.ID, listLimit(r))
	if err != nil {
		http.Error(w, "failed to list reviews", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reviewItems(reviews, true))
}

func (h *ReviewHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}

	var req moderateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ReviewID = strings.TrimSpace(req.ReviewID)
	if req.ReviewID == "" {
		http.Error(w, "review_id required", http.StatusBadRequest)
		return
	}

	if err := h.reviewRepo.SetModeration(ctx, req.ReviewID, profile.ID, req.Approved); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "review not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to moderate review", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	profile, ok := requireProviderProfile(ctx, w, r, h.dir)
	if !ok {
		return
	}

	var req deleteReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ReviewID = strings.TrimSpace(req.ReviewID)
	if req.ReviewID == "" {
		http.Error(w, "review_id required", http.StatusBadRequest)
		return
	}

	if err := h.reviewRepo.Delete(ctx, req.ReviewID, profile.ID); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "review not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete review", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reviewItems(reviews []model.Review, includeModeration bool) []reviewItem {
	items := make([]reviewItem, 0, len(reviews))
	for _, rev := range reviews {
		item := reviewItem{
			ReviewID:   rev.ID,
			ProviderID: rev.ProviderID,
			Rating:     rev.Rating,
			Title:      rev.Title,
			Comment:    rev.Comment,
			CreatedAt:  rev.CreatedAt.UTC().Format(time.RFC3339),
		}
		if includeModeration {
			item.IsApproved = rev.IsApproved
		}
		items = append(items, item)
	}
	return items
}

func listLimit(r *http.Request) int {
	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	return limit
}
