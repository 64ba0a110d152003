package outbox

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
)

func TestAppointmentBookedEvent(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	appt := model.Appointment{
		ID:          "appt-1",
		ProviderID:  "prov-1",
		RequesterID: "user-1",
		StartAt:     start,
		Status:      model.StatusScheduled,
	}

	evt, err := AppointmentBooked(appt, Recipients{
		ProviderUserID: "prov-user-1",
		RequesterEmail: "user-1@example.com",
	})
	if err != nil {
		t.Fatalf("AppointmentBooked failed: %v", err)
	}
	if evt.EventType != EventAppointmentBooked {
		t.Fatalf("event type = %q", evt.EventType)
	}
	if evt.AggregateType != "appointment" || evt.AggregateID != "appt-1" {
		t.Fatalf("aggregate = %q/%q", evt.AggregateType, evt.AggregateID)
	}

	var payload map[string]any
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		t.Fatalf("payload is not valid json: %v", err)
	}
	if payload["appointment_id"] != "appt-1" {
		t.Errorf("appointment_id = %v", payload["appointment_id"])
	}
	if payload["provider_user_id"] != "prov-user-1" {
		t.Errorf("provider_user_id = %v", payload["provider_user_id"])
	}
	if payload["requester_email"] != "user-1@example.com" {
		t.Errorf("requester_email = %v", payload["requester_email"])
	}
	if payload["status"] != "scheduled" {
		t.Errorf("status = %v", payload["status"])
	}
	if payload["start_at"] != start.Format(time.RFC3339) {
		t.Errorf("start_at = %v", payload["start_at"])
	}
}

func TestAppointmentCancelledOmitsUnknownRecipients(t *testing.T) {
	evt, err := AppointmentCancelled(model.Appointment{
		ID:          "appt-2",
		ProviderID:  "prov-1",
		RequesterID: "user-1",
		StartAt:     time.Now(),
		Status:      model.StatusCancelled,
	}, Recipients{})
	if err != nil {
		t.Fatalf("AppointmentCancelled failed: %v", err)
	}
	if evt.EventType != EventAppointmentCancelled {
		t.Fatalf("event type = %q", evt.EventType)
	}

	var payload map[string]any
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		t.Fatalf("payload is not valid json: %v", err)
	}
	if _, ok := payload["provider_user_id"]; ok {
		t.Error("provider_user_id should be omitted when unresolved")
	}
	if _, ok := payload["requester_email"]; ok {
		t.Error("requester_email should be omitted when unresolved")
	}
}
