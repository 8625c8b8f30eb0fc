package requests

type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,hexadecimal,len=24"`
	SlotDate string `json:"slot_date" validate:"required,slot_date"`
	SlotTime string `json:"slot_time" validate:"required,slot_time"`

	// Filled from the session, never from the client payload.
	PatientID string `json:"-"`
}

type ToggleAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}
