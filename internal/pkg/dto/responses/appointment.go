package responses

import "time"

// Appointment is the projection returned by every mutating appointment
// endpoint. The cancelled/isCompleted booleans are derived from the status
// enum so older clients keep working.
type Appointment struct {
	ID          string  `json:"id"`
	PatientID   string  `json:"patient_id"`
	DoctorID    string  `json:"doctor_id"`
	SlotDate    string  `json:"slot_date"`
	SlotTime    string  `json:"slot_time"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	Cancelled   bool    `json:"cancelled"`
	IsCompleted bool    `json:"isCompleted"`

	PatientName  string `json:"patient_name,omitempty"`
	PatientImage string `json:"patient_image,omitempty"`
	DoctorName   string `json:"doctor_name,omitempty"`
	DoctorImage  string `json:"doctor_image,omitempty"`
	Speciality   string `json:"speciality,omitempty"`

	PaymentPaid bool       `json:"payment_paid"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// PaymentOrder is returned by the create-order endpoint so the frontend can
// open the gateway checkout.
type PaymentOrder struct {
	OrderID    string  `json:"order_id"`
	Amount     int64   `json:"amount"`
	Currency   string  `json:"currency"`
	Fee        float64 `json:"fee"`
	DoctorName string  `json:"doctor_name,omitempty"`
}
