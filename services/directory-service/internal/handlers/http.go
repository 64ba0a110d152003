package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/services/directory-service/internal/storage"
)

type Handler struct {
	repo *storage.Repository
}

func New(repo *storage.Repository) *Handler {
	return &Handler{repo: repo}
}

func userIDFromHeader(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func isProvider(r *http.Request) bool {
	return strings.TrimSpace(r.Header.Get("X-Role")) == "psychologist"
}

type profileItem struct {
	ProviderID  string `json:"provider_id"`
	DisplayName string `json:"display_name"`
	Specialty   string `json:"specialty,omitempty"`
	Bio         string `json:"bio,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	MemberSince string `json:"member_since"`
}

func toProfileItem(p storage.ProviderProfile) profileItem {
	return profileItem{
		ProviderID:  p.ID,
		DisplayName: p.DisplayName,
		Specialty:   p.Specialty,
		Bio:         p.Bio,
		PhotoURL:    p.PhotoURL,
		MemberSince: p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListProviders is the public directory: active psychologists only.
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 100
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	profiles, err := h.repo.ListActive(r.Context(), limit)
	if err != nil {
		http.Error(w, "failed to list providers", http.StatusInternalServerError)
		return
	}
	items := make([]profileItem, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, toProfileItem(p))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(items)
}

// GetProvider returns one public profile by id.
func (h *Handler) GetProvider(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	if providerID == "" {
		http.Error(w, "provider_id required", http.StatusBadRequest)
		return
	}

	p, err := h.repo.GetByID(r.Context(), providerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "provider not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load provider", http.StatusInternalServerError)
		return
	}
	if !p.IsActive {
		http.Error(w, "provider not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(toProfileItem(p))
}

// GetOwnProfile returns the acting psychologist's profile, including
// fields the public listing hides.
func (h *Handler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := userIDFromHeader(r)
	if userID == "" || !isProvider(r) {
		http.Error(w, "provider identity required", http.StatusForbidden)
		return
	}

	p, err := h.repo.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "no profile yet", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"provider_id":  p.ID,
		"display_name": p.DisplayName,
		"specialty":    p.Specialty,
		"bio":          p.Bio,
		"photo_url":    p.PhotoURL,
		"is_active":    p.IsActive,
	})
}

// UpdateOwnProfile creates or updates the acting psychologist's profile.
func (h *Handler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := userIDFromHeader(r)
	if userID == "" || !isProvider(r) {
		http.Error(w, "provider identity required", http.StatusForbidden)
		return
	}

	var req struct {
		DisplayName string `json:"display_name"`
		Specialty   string `json:"specialty"`
		Bio         string `json:"bio"`
		PhotoURL    string `json:"photo_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		http.Error(w, "display_name required", http.StatusBadRequest)
		return
	}

	id, err := h.repo.UpsertOwn(r.Context(), userID, req.DisplayName, strings.TrimSpace(req.Specialty), strings.TrimSpace(req.Bio), strings.TrimSpace(req.PhotoURL))
	if err != nil {
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"provider_id": id})
}

// SetActive toggles public visibility of the acting psychologist.
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := userIDFromHeader(r)
	if userID == "" || !isProvider(r) {
		http.Error(w, "provider identity required", http.StatusForbidden)
		return
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		http.Error(w, "is_active required", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetActive(r.Context(), userID, *req.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "no profile yet", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
