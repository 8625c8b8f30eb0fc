package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":  "is required",
	"min":       "must be at least %s characters long",
	"max":       "maximum at %s characters long",
	"numeric":   "must be a number",
	"len":       "must be %s characters long",
	"oneof":     "must be one of [%s]",
	"gt":        "must be greater than %s",
	"gte":       "must be greater than or equal to %s",
	"hexadecimal": "must be a hexadecimal string",
	"slot_date": "must use the D_M_YYYY date format",
	"slot_time": "must use the HH:MM 24-hour time format",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "cannot process request, please check your request"
	ErrClientSomethingWrongWithApplication = "something wrong with the application, please contact admin"
	ErrClientServerLongRespond             = "server takes too long to respond"
	ErrClientNotAuthorized                 = "you are not authorized to do this action"
	ErrClientNotLoggedIn                   = "you are not logged in, please login first"

	ErrClientDoctorNotFound        = "doctor not found"
	ErrClientDoctorNotAvailable    = "doctor is not available for booking"
	ErrClientPatientNotFound       = "patient not found"
	ErrClientSlotNotAvailable      = "slot not available"
	ErrClientAppointmentNotFound   = "appointment not found"
	ErrClientAppointmentTerminal   = "appointment is already cancelled or completed"
	ErrClientInvalidPaymentAmount  = "invalid appointment amount"
	ErrClientInvalidSignature      = "invalid payment signature"
	ErrClientPaymentGatewayFailure = "payment provider is unavailable, please try again"
)

// Error messages for developers
const (
	ErrDevValidationFailed          = "input validation failed"
	ErrDevInvalidInput              = "invalid input"
	ErrDevCannotParseJSON           = "failed to parse JSON payload"
	ErrDevCannotMarshalJSON         = "failed to marshal value into JSON"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevServerProcess             = "server is unable to process the request"
	ErrDevURLParamIDValidationFailed = "URL param '%s' failed validation"

	ErrDevAuthTokenMissing          = "authorization token is missing"
	ErrDevAuthTokenInvalid          = "authorization token is invalid"
	ErrDevAuthTokenInvalidOrExpired = "authorization token is invalid or expired"
	ErrDevAuthSigningMethod         = "unexpected JWT signing method"
	ErrDevAuthInvalidSession        = "session not found or expired"
	ErrDevRoleTypeDoesntMatch       = "session role does not allow this operation"
	ErrDevMissingRequestID          = "request ID not found in request context"
	ErrDevMissingSessionData        = "session data not found in request context"

	ErrDevDoctorNotExists           = "doctor does not exist"
	ErrDevDoctorNotAvailable        = "doctor availability flag is false"
	ErrDevPatientNotExists          = "patient does not exist"
	ErrDevSlotAlreadyBooked         = "slot is already present in the doctor ledger"
	ErrDevSlotLockNotAcquired       = "could not acquire the doctor slot lock"
	ErrDevAppointmentNotExists      = "appointment does not exist"
	ErrDevAppointmentTerminalState  = "appointment is in a terminal state"
	ErrDevPaymentAmountInvalid      = "appointment amount is zero or negative"
	ErrDevPaymentSignatureMismatch  = "computed HMAC signature does not match"
	ErrDevPaymentGatewayRequest     = "payment gateway request failed"
	ErrDevPaymentOrderMissing       = "appointment has no payment order to verify against"

	ErrDevDBFailedToFindDocument    = "database failed to find document"
	ErrDevDBFailedToInsertDocument  = "database failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "database failed to update document"
	ErrDevDBFailedToDeleteDocument  = "database failed to delete document"
	ErrDevDBFailedToIterateDocuments = "database failed to iterate documents"
	ErrDevDBStringNotObjectID       = "provided hex-string is not a valid ObjectID"

	ErrDevRedisGetNoData        = "redis failed to get data with key: %s"
	ErrDevRedisSetData          = "redis failed to set data"
	ErrDevRedisGetData          = "redis failed to get data"
	ErrDevRedisDeleteData       = "redis failed to delete data"
	ErrDevRedisUnlockNotOwner   = "redis lock is not owned by this client"

	ErrDevRabbitMQPublish = "rabbitmq failed to publish message to queue: %s"
)
