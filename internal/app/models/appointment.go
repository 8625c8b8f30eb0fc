package models

import (
	"time"

	"medipoint-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment is the persisted booking record. It carries snapshots of the
// patient and doctor taken at booking time, so later profile edits do not
// rewrite history.
type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID primitive.ObjectID `bson:"patient_id" json:"patient_id"`
	DoctorID  primitive.ObjectID `bson:"doctor_id" json:"doctor_id"`

	SlotDate string  `bson:"slot_date" json:"slot_date"`
	SlotTime string  `bson:"slot_time" json:"slot_time"`
	Amount   float64 `bson:"amount" json:"amount"`

	PatientData PatientSnapshot `bson:"patient_data" json:"patient_data"`
	DoctorData  DoctorSnapshot  `bson:"doctor_data" json:"doctor_data"`

	// Status is the single source of truth for the lifecycle. The
	// Cancelled/IsCompleted booleans on the response DTOs are derived
	// from it, never stored separately.
	Status string `bson:"status" json:"status"`

	Payment PaymentInfo `bson:"payment" json:"payment"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}

// PatientSnapshot is the patient profile as it looked when the booking was
// made.
type PatientSnapshot struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// DoctorSnapshot is the doctor profile as it looked when the booking was
// made. Fees here is the amount the appointment was priced at.
type DoctorSnapshot struct {
	Name       string  `bson:"name" json:"name"`
	Speciality string  `bson:"speciality" json:"speciality"`
	Image      string  `bson:"image,omitempty" json:"image,omitempty"`
	Fees       float64 `bson:"fees" json:"fees"`
	Address    Address `bson:"address,omitempty" json:"address,omitempty"`
}

// PaymentInfo tracks the gateway order attached to an appointment. The order
// fields record what the gateway returned at creation time so later
// reconciliation can correlate charges; Paid and PaymentDate are set exactly
// once, on the first successful verification.
type PaymentInfo struct {
	Paid           bool       `bson:"paid" json:"paid"`
	OrderID        string     `bson:"order_id,omitempty" json:"order_id,omitempty"`
	OrderAmount    int64      `bson:"order_amount,omitempty" json:"order_amount,omitempty"`
	OrderCreatedAt *time.Time `bson:"order_created_at,omitempty" json:"order_created_at,omitempty"`
	PaymentID      string     `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	PaymentDate    *time.Time `bson:"payment_date,omitempty" json:"payment_date,omitempty"`
}

func (a *Appointment) IsTerminal() bool {
	return a.Status == constvars.AppointmentStatusCancelled || a.Status == constvars.AppointmentStatusCompleted
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == constvars.AppointmentStatusCancelled
}

func (a *Appointment) IsCompleted() bool {
	return a.Status == constvars.AppointmentStatusCompleted
}
