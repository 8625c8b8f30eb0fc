package constvars

// Context keys. Kept as plain strings so middleware and usecases agree on
// the same key without importing each other.
type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
)

// Mongo collections.
const (
	MongoCollectionDoctors      = "doctors"
	MongoCollectionPatients     = "patients"
	MongoCollectionAppointments = "appointments"
)

// Session roles.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// Appointment lifecycle states as persisted.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
)

// Redis key prefixes for the locker service.
const (
	RedisKeyDoctorSlotsLock = "lock:doctor-slots:%s"
	RedisKeyAppointmentLock = "lock:appointment:%s"
)

// Notification event types published to the mailer queue.
const (
	NotificationAppointmentBooked    = "appointment_booked"
	NotificationAppointmentCancelled = "appointment_cancelled"
	NotificationPaymentVerified      = "payment_verified"
)
