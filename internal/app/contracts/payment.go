package contracts

import (
	"context"

	"medipoint-service/internal/app/models"
	"medipoint-service/internal/pkg/dto/requests"
	"medipoint-service/internal/pkg/dto/responses"
)

type PaymentGatewayService interface {
	CreateOrder(ctx context.Context, request *requests.GatewayOrderRequest) (*responses.GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) error
}

type PaymentUsecase interface {
	CreatePaymentOrder(ctx context.Context, request *requests.CreatePaymentOrderRequest, session *models.Session) (*responses.PaymentOrder, error)
	VerifyPayment(ctx context.Context, request *requests.VerifyPaymentRequest, session *models.Session) (*responses.Appointment, error)
}
