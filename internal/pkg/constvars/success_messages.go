package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Doctor directory messages
	GetDoctorsSuccessMessage        = "doctors retrieved successfully"
	DoctorAvailabilityToggleMessage = "availability changed"
	GetDashboardSuccessMessage      = "dashboard data retrieved successfully"

	// Appointment messages
	BookAppointmentSuccessMessage     = "appointment booked"
	GetAppointmentSuccessMessage      = "appointments retrieved successfully"
	CancelAppointmentSuccessMessage   = "appointment cancelled"
	CompleteAppointmentSuccessMessage = "appointment completed"

	// Payment messages
	CreatePaymentOrderSuccessMessage = "payment order created"
	VerifyPaymentSuccessMessage      = "payment verified and appointment updated"
)
