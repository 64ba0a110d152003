package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetProviderRequiresID(t *testing.T) {
	h := New(nil)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/public/providers?provider_id=", nil)
	rw := httptest.NewRecorder()
	h.GetProvider(rw, req)
	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rw.Code)
	}
}

func TestOwnProfileRequiresProviderIdentity(t *testing.T) {
	h := New(nil)

	cases := []struct {
		name   string
		userID string
		role   string
	}{
		{"no identity", "", ""},
		{"client role", "user-1", "client"},
		{"role without user", "", "psychologist"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/provider/profile", nil)
			if tc.userID != "" {
				req.Header.Set("X-User-Id", tc.userID)
			}
			if tc.role != "" {
				req.Header.Set("X-Role", tc.role)
			}
			rw := httptest.NewRecorder()
			h.GetOwnProfile(rw, req)
			if rw.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rw.Code)
			}
		})
	}
}

func TestUpdateOwnProfileValidation(t *testing.T) {
	h := New(nil)

	req := httptest.NewRequest(http.MethodPut, "http://example.com/api/v1/provider/profile", strings.NewReader(`{"display_name":"  "}`))
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("X-Role", "psychologist")
	rw := httptest.NewRecorder()
	h.UpdateOwnProfile(rw, req)
	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank display_name, got %d", rw.Code)
	}

	reqMethod := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/provider/profile", strings.NewReader(`{}`))
	rwMethod := httptest.NewRecorder()
	h.UpdateOwnProfile(rwMethod, reqMethod)
	if rwMethod.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rwMethod.Code)
	}
}

func TestSetActiveRequiresFlag(t *testing.T) {
	h := New(nil)

	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/provider/profile/active", strings.NewReader(`{}`))
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("X-Role", "psychologist")
	rw := httptest.NewRecorder()
	h.SetActive(rw, req)
	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rw.Code)
	}
}
