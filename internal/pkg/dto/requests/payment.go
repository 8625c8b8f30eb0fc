package requests

type CreatePaymentOrderRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required,hexadecimal,len=24"`
}

type VerifyPaymentRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required,hexadecimal,len=24"`
	OrderID       string `json:"order_id" validate:"required"`
	PaymentID     string `json:"payment_id" validate:"required"`
	Signature     string `json:"signature" validate:"required"`
}

// GatewayOrderRequest is the payload sent to the external payment gateway
// when creating an order. Amount is in minor units (e.g. paise).
type GatewayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}
