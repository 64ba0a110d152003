package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/services/notification-service/internal/storage"
)

type Handler struct {
	repo *storage.Repository
}

func New(repo *storage.Repository) *Handler {
	return &Handler{repo: repo}
}

type notificationItem struct {
	NotificationID string `json:"notification_id"`
	AppointmentID  string `json:"appointment_id,omitempty"`
	Kind           string `json:"kind"`
	Message        string `json:"message"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}

// List returns the caller's in-app notifications, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.repo.ListByRecipient(r.Context(), userID, unreadOnly, limit)
	if err != nil {
		http.Error(w, "failed to list notifications", http.StatusInternalServerError)
		return
	}

	items := make([]notificationItem, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, notificationItem{
			NotificationID: n.ID,
			AppointmentID:  n.AppointmentID,
			Kind:           n.Kind,
			Message:        n.Message,
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(items)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req struct {
		NotificationID string `json:"notification_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.NotificationID = strings.TrimSpace(req.NotificationID)
	if req.NotificationID == "" {
		http.Error(w, "notification_id required", http.StatusBadRequest)
		return
	}

	if err := h.repo.MarkRead(r.Context(), userID, req.NotificationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "notification not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to mark notification", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
