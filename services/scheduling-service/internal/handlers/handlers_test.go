package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/directory"
)

type fakeDirectory struct {
	profile directory.Profile
	err     error
}

func (f *fakeDirectory) ProfileByID(_ context.Context, _ string) (directory.Profile, error) {
	return f.profile, f.err
}

func (f *fakeDirectory) ProfileByUser(_ context.Context, _ string) (directory.Profile, error) {
	return f.profile, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func providerRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("X-User-Id", "u-provider")
	r.Header.Set("X-Role", "psychologist")
	return r
}

func clientRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("X-User-Id", "u-client")
	r.Header.Set("X-Role", "client")
	return r
}

func activeProfile() *fakeDirectory {
	return &fakeDirectory{profile: directory.Profile{ID: "p-1", UserID: "u-provider", IsActive: true}}
}

func TestScheduleAdd_RequiresAuth(t *testing.T) {
	h := NewScheduleHandler(nil, activeProfile(), testLogger())
	w := httptest.NewRecorder()
	h.Add(w, httptest.NewRequest(http.MethodPost, "/api/v1/provider/schedule/add", strings.NewReader(`{}`)))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestScheduleAdd_RequiresProviderRole(t *testing.T) {
	h := NewScheduleHandler(nil, activeProfile(), testLogger())
	w := httptest.NewRecorder()
	h.Add(w, clientRequest(http.MethodPost, "/api/v1/provider/schedule/add", `{}`))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestScheduleAdd_Validation(t *testing.T) {
	h := NewScheduleHandler(nil, activeProfile(), testLogger())
	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"weekday out of range", `{"weekday": 7, "start_time": "09:00", "end_time": "12:00"}`},
		{"bad start clock", `{"weekday": 1, "start_time": "9am", "end_time": "12:00"}`},
		{"bad end clock", `{"weekday": 1, "start_time": "09:00", "end_time": "25:00"}`},
		{"end before start", `{"weekday": 1, "start_time": "12:00", "end_time": "09:00"}`},
		{"zero width", `{"weekday": 1, "start_time": "09:00", "end_time": "09:00"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Add(w, providerRequest(http.MethodPost, "/api/v1/provider/schedule/add", tc.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestScheduleAdd_MethodNotAllowed(t *testing.T) {
	h := NewScheduleHandler(nil, activeProfile(), testLogger())
	w := httptest.NewRecorder()
	h.Add(w, providerRequest(http.MethodGet, "/api/v1/provider/schedule/add", ""))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestSlotAdd_Validation(t *testing.T) {
	h := NewSlotHandler(nil, nil, activeProfile(), testLogger())

	cases := []struct {
		name string
		body string
	}{
		{"bad date", `{"date": "tomorrow", "start_time": "09:00", "end_time": "12:00"}`},
		{"bad clock", `{"date": "2999-01-04", "start_time": "nine", "end_time": "12:00"}`},
		{"inverted window", `{"date": "2999-01-04", "start_time": "12:00", "end_time": "09:00"}`},
		{"past date", `{"date": "2020-01-01", "start_time": "09:00", "end_time": "12:00"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Add(w, providerRequest(http.MethodPost, "/api/v1/provider/slots/add", tc.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestPublicSlots_RequiresProviderID(t *testing.T) {
	h := NewSlotHandler(nil, nil, activeProfile(), testLogger())
	w := httptest.NewRecorder()
	h.PublicList(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/slots", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBookingCreate_Validation(t *testing.T) {
	h := NewBookingHandler(nil, nil, nil, activeProfile(), testLogger(), false)

	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/book", strings.NewReader(`{"provider_id": "p-1", "start_time": "2026-03-02T10:00:00Z"}`)))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Create(w, clientRequest(http.MethodPost, "/api/v1/appointments/book", `{"start_time": "2026-03-02T10:00:00Z"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing provider_id, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Create(w, clientRequest(http.MethodPost, "/api/v1/appointments/book", `{"provider_id": "p-1", "start_time": "tomorrow at ten"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed start_time, got %d", w.Code)
	}
}

func TestBookingCancel_Validation(t *testing.T) {
	h := NewBookingHandler(nil, nil, nil, activeProfile(), testLogger(), false)
	w := httptest.NewRecorder()
	h.Cancel(w, clientRequest(http.MethodPost, "/api/v1/appointments/cancel", `{}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateStatus_Validation(t *testing.T) {
	h := NewBookingHandler(nil, nil, nil, activeProfile(), testLogger(), false)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, clientRequest(http.MethodPost, "/api/v1/provider/appointments/status", `{"appointment_id": "a-1", "status": "confirmed"}`))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client role, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.UpdateStatus(w, providerRequest(http.MethodPost, "/api/v1/provider/appointments/status", `{"appointment_id": "a-1", "status": "rescheduled"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestReviewSubmit_Validation(t *testing.T) {
	h := NewReviewHandler(nil, nil, activeProfile(), testLogger())
	cases := []struct {
		name string
		body string
	}{
		{"missing provider", `{"rating": 5, "comment": "great"}`},
		{"missing comment", `{"provider_id": "p-1", "rating": 5}`},
		{"rating too low", `{"provider_id": "p-1", "rating": 0, "comment": "hm"}`},
		{"rating too high", `{"provider_id": "p-1", "rating": 6, "comment": "hm"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Submit(w, clientRequest(http.MethodPost, "/api/v1/reviews", tc.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestReviewPublicList_RequiresProviderID(t *testing.T) {
	h := NewReviewHandler(nil, nil, activeProfile(), testLogger())
	w := httptest.NewRecorder()
	h.PublicList(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/reviews", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
