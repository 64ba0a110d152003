package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/outbox"
)

// fakeTx stands in for a pgx transaction in flows that never reach a
// database. Handlers only ever Commit or Roll back; anything else on
// the embedded nil interface would panic.
type fakeTx struct{ pgx.Tx }

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeSchedule struct {
	ScheduleStore
	templates []model.ScheduleTemplate
	nextID    int
}

func (f *fakeSchedule) Begin(context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

func (f *fakeSchedule) ListTemplates(context.Context, string) ([]model.ScheduleTemplate, error) {
	return f.templates, nil
}

func (f *fakeSchedule) ListTemplatesForWeekdayForUpdate(_ context.Context, _ pgx.Tx, _ string, weekday time.Weekday) ([]model.ScheduleTemplate, error) {
	var out []model.ScheduleTemplate
	for _, tpl := range f.templates {
		if tpl.Weekday == weekday {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (f *fakeSchedule) CreateTemplate(_ context.Context, _ pgx.Tx, tpl *model.ScheduleTemplate) (string, error) {
	f.nextID++
	tpl.ID = fmt.Sprintf("t-%d", f.nextID)
	f.templates = append(f.templates, *tpl)
	return tpl.ID, nil
}

type fakeSlots struct {
	SlotStore
	slots map[string]*model.TimeSlot
}

func newFakeSlots() *fakeSlots {
	return &fakeSlots{slots: map[string]*model.TimeSlot{}}
}

func slotKey(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func (f *fakeSlots) InsertSlots(_ context.Context, providerID string, starts []time.Time) (int, error) {
	created := 0
	for _, start := range starts {
		key := slotKey(start)
		if _, ok := f.slots[key]; ok {
			continue
		}
		f.slots[key] = &model.TimeSlot{
			ID:          fmt.Sprintf("s-%d", len(f.slots)+1),
			ProviderID:  providerID,
			StartAt:     start,
			EndAt:       start.Add(time.Hour),
			IsAvailable: true,
		}
		created++
	}
	return created, nil
}

func (f *fakeSlots) ClaimSlot(_ context.Context, _ pgx.Tx, _ string, startAt time.Time, requesterID string) (model.TimeSlot, error) {
	s, ok := f.slots[slotKey(startAt)]
	if !ok || !s.IsAvailable || s.IsBooked {
		return model.TimeSlot{}, pgx.ErrNoRows
	}
	s.IsBooked = true
	s.BookedBy = &requesterID
	return *s, nil
}

func (f *fakeSlots) ReleaseSlot(_ context.Context, _ pgx.Tx, _ string, startAt time.Time) error {
	if s, ok := f.slots[slotKey(startAt)]; ok {
		s.IsBooked = false
		s.BookedBy = nil
	}
	return nil
}

type fakeAppointments struct {
	AppointmentStore
	appt    model.Appointment
	created int
	cancels int
}

func (f *fakeAppointments) Begin(context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

func (f *fakeAppointments) Create(_ context.Context, _ pgx.Tx, appt *model.Appointment) (string, error) {
	f.created++
	f.appt = *appt
	f.appt.ID = fmt.Sprintf("a-%d", f.created)
	return f.appt.ID, nil
}

func (f *fakeAppointments) GetForUpdate(context.Context, pgx.Tx, string) (model.Appointment, error) {
	return f.appt, nil
}

func (f *fakeAppointments) Cancel(context.Context, pgx.Tx, string) (time.Time, error) {
	f.cancels++
	now := time.Now().UTC()
	f.appt.Status = model.StatusCancelled
	f.appt.CancelledAt = &now
	return now, nil
}

type fakeOutbox struct {
	events []string
}

func (f *fakeOutbox) Insert(_ context.Context, _ pgx.Tx, evt outbox.Event) error {
	f.events = append(f.events, evt.EventType)
	return nil
}

func TestBookingCreate_SlotBooksAtMostOnce(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	slotStore := newFakeSlots()
	if _, err := slotStore.InsertSlots(context.Background(), "p-1", []time.Time{start}); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	appts := &fakeAppointments{}
	events := &fakeOutbox{}
	h := NewBookingHandler(appts, slotStore, events, activeProfile(), testLogger(), false)

	body := `{"provider_id": "p-1", "start_time": "2026-03-02T10:00:00Z"}`

	w := httptest.NewRecorder()
	h.Create(w, clientRequest(http.MethodPost, "/api/v1/appointments/book", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("first booking: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(events.events) != 1 || events.events[0] != outbox.EventAppointmentBooked {
		t.Fatalf("expected one booked event, got %v", events.events)
	}

	w = httptest.NewRecorder()
	h.Create(w, clientRequest(http.MethodPost, "/api/v1/appointments/book", body))
	if w.Code != http.StatusConflict {
		t.Fatalf("second booking of the same slot: expected 409, got %d", w.Code)
	}
	if appts.created != 1 {
		t.Fatalf("expected exactly one appointment, got %d", appts.created)
	}
}

func TestBookingCancel_OnlyOnce(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	appts := &fakeAppointments{appt: model.Appointment{
		ID:          "a-1",
		ProviderID:  "p-1",
		RequesterID: "u-client",
		StartAt:     start,
		Status:      model.StatusScheduled,
	}}
	events := &fakeOutbox{}
	h := NewBookingHandler(appts, newFakeSlots(), events, activeProfile(), testLogger(), false)

	body := `{"appointment_id": "a-1"}`

	w := httptest.NewRecorder()
	h.Cancel(w, clientRequest(http.MethodPost, "/api/v1/appointments/cancel", body))
	if w.Code != http.StatusOK {
		t.Fatalf("first cancel: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Status      string `json:"status"`
		CancelledAt string `json:"cancelled_at"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode cancel response: %v", err)
	}
	if resp.Status != string(model.StatusCancelled) || resp.CancelledAt == "" {
		t.Fatalf("unexpected cancel response: %+v", resp)
	}

	w = httptest.NewRecorder()
	h.Cancel(w, clientRequest(http.MethodPost, "/api/v1/appointments/cancel", body))
	if w.Code != http.StatusConflict {
		t.Fatalf("second cancel: expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if appts.cancels != 1 {
		t.Fatalf("expected exactly one cancel write, got %d", appts.cancels)
	}
	if len(events.events) != 1 {
		t.Fatalf("expected one cancelled event, got %v", events.events)
	}
}

func TestBookingCancel_ByStranger(t *testing.T) {
	appts := &fakeAppointments{appt: model.Appointment{
		ID:          "a-1",
		ProviderID:  "p-1",
		RequesterID: "u-someone-else",
		Status:      model.StatusScheduled,
	}}
	dir := &fakeDirectory{err: pgx.ErrNoRows}
	h := NewBookingHandler(appts, newFakeSlots(), &fakeOutbox{}, dir, testLogger(), false)

	w := httptest.NewRecorder()
	h.Cancel(w, clientRequest(http.MethodPost, "/api/v1/appointments/cancel", `{"appointment_id": "a-1"}`))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a stranger, got %d", w.Code)
	}
	if appts.cancels != 0 {
		t.Fatalf("expected no cancel write, got %d", appts.cancels)
	}
}

func TestScheduleAdd_RejectsOverlap(t *testing.T) {
	repo := &fakeSchedule{templates: []model.ScheduleTemplate{{
		ID:          "t-0",
		ProviderID:  "p-1",
		Weekday:     time.Monday,
		StartMinute: 9 * 60,
		EndMinute:   12 * 60,
		IsAvailable: true,
	}}}
	h := NewScheduleHandler(repo, activeProfile(), testLogger())

	w := httptest.NewRecorder()
	h.Add(w, providerRequest(http.MethodPost, "/api/v1/provider/schedule/add", `{"weekday": 1, "start_time": "10:00", "end_time": "11:00"}`))
	if w.Code != http.StatusConflict {
		t.Fatalf("overlapping window: expected 409, got %d: %s", w.Code, w.Body.String())
	}

	// Touching endpoints do not overlap.
	w = httptest.NewRecorder()
	h.Add(w, providerRequest(http.MethodPost, "/api/v1/provider/schedule/add", `{"weekday": 1, "start_time": "12:00", "end_time": "13:00"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("adjacent window: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Same clock window on another weekday is fine too.
	w = httptest.NewRecorder()
	h.Add(w, providerRequest(http.MethodPost, "/api/v1/provider/schedule/add", `{"weekday": 2, "start_time": "10:00", "end_time": "11:00"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("other weekday: expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSlotGenerate_SkipsExistingSlots(t *testing.T) {
	repo := &fakeSchedule{templates: []model.ScheduleTemplate{{
		ID:          "t-1",
		ProviderID:  "p-1",
		Weekday:     time.Monday,
		StartMinute: 9 * 60,
		EndMinute:   11 * 60,
		IsAvailable: true,
	}}}
	slotStore := newFakeSlots()
	h := NewSlotHandler(slotStore, repo, activeProfile(), testLogger())

	generate := func() int {
		t.Helper()
		w := httptest.NewRecorder()
		h.Generate(w, providerRequest(http.MethodPost, "/api/v1/provider/slots/generate", ""))
		if w.Code != http.StatusOK {
			t.Fatalf("generate: expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp generateSlotsResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode generate response: %v", err)
		}
		return resp.Created
	}

	if first := generate(); first == 0 {
		t.Fatal("expected the first run to create slots")
	}
	if second := generate(); second != 0 {
		t.Fatalf("expected the second run to create nothing, got %d", second)
	}
}
