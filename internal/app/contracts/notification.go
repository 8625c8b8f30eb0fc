package contracts

import "context"

// NotificationMessage is the envelope published to the notification queue.
// Delivery is best effort; publish failures are logged and never fail the
// booking flow.
type NotificationMessage struct {
	EventType     string `json:"event_type"`
	AppointmentID string `json:"appointment_id"`
	PatientEmail  string `json:"patient_email,omitempty"`
	DoctorName    string `json:"doctor_name,omitempty"`
	SlotDate      string `json:"slot_date,omitempty"`
	SlotTime      string `json:"slot_time,omitempty"`
}

type NotificationPublisher interface {
	PublishNotification(ctx context.Context, message *NotificationMessage) error
}
