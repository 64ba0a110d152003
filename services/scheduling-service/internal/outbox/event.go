package outbox

import (
	"encoding/json"
	"time"

	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
)

// Topic name equals the event type, one topic per event.
const (
	EventAppointmentBooked    = "scheduling.appointment.booked.v1"
	EventAppointmentCancelled = "scheduling.appointment.cancelled.v1"
)

// Event is the envelope written to the outbox table inside the booking
// transaction. The poller relays it to Kafka after commit.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

type appointmentPayload struct {
	AppointmentID  string    `json:"appointment_id"`
	ProviderID     string    `json:"provider_id"`
	ProviderUserID string    `json:"provider_user_id,omitempty"`
	RequesterID    string    `json:"requester_id"`
	RequesterEmail string    `json:"requester_email,omitempty"`
	StartAt        time.Time `json:"start_at"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Recipients names the parties downstream consumers should notify.
// The scheduling service resolves them while it still has the context.
type Recipients struct {
	ProviderUserID string
	RequesterEmail string
}

func AppointmentBooked(appt model.Appointment, rcpt Recipients) (Event, error) {
	return appointmentEvent(EventAppointmentBooked, appt, rcpt)
}

func AppointmentCancelled(appt model.Appointment, rcpt Recipients) (Event, error) {
	return appointmentEvent(EventAppointmentCancelled, appt, rcpt)
}

func appointmentEvent(eventType string, appt model.Appointment, rcpt Recipients) (Event, error) {
	payload, err := json.Marshal(appointmentPayload{
		AppointmentID:  appt.ID,
		ProviderID:     appt.ProviderID,
		ProviderUserID: rcpt.ProviderUserID,
		RequesterID:    appt.RequesterID,
		RequesterEmail: rcpt.RequesterEmail,
		StartAt:        appt.StartAt,
		Status:         string(appt.Status),
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     eventType,
		Payload:       payload,
	}, nil
}
