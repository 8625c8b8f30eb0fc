package payments

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"medipoint-service/internal/app/config"
	"medipoint-service/internal/app/contracts"
	"medipoint-service/internal/app/models"
	"medipoint-service/internal/pkg/constvars"
	"medipoint-service/internal/pkg/dto/requests"
	"medipoint-service/internal/pkg/dto/responses"
	"medipoint-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type paymentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	PaymentGateway        contracts.PaymentGatewayService
	LockerService         contracts.LockerService
	NotificationPublisher contracts.NotificationPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	paymentGateway contracts.PaymentGatewayService,
	lockerService contracts.LockerService,
	notificationPublisher contracts.NotificationPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		paymentUsecaseInstance = &paymentUsecase{
			AppointmentRepository: appointmentRepository,
			PaymentGateway:        paymentGateway,
			LockerService:         lockerService,
			NotificationPublisher: notificationPublisher,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return paymentUsecaseInstance
}

func (uc *paymentUsecase) CreatePaymentOrder(ctx context.Context, request *requests.CreatePaymentOrderRequest, session *models.Session) (*responses.PaymentOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreatePaymentOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindAppointmentByID(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", request.AppointmentID))
	}
	if !ownsAppointment(appointment, session) {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("session role %s cannot pay for appointment %s", session.Role, request.AppointmentID))
	}
	// Every precondition fails before the gateway sees the request.
	if appointment.IsCancelled() {
		return nil, exceptions.ErrAppointmentAlreadyTerminal(fmt.Errorf("appointment %s is cancelled", request.AppointmentID))
	}
	if appointment.Amount <= 0 {
		return nil, exceptions.ErrInvalidPaymentAmount(fmt.Errorf("appointment %s has amount %f", request.AppointmentID, appointment.Amount))
	}

	// Gateway amounts are integral minor units, e.g. a 500.00 fee becomes
	// 50000 paise.
	minorUnits := int64(math.Round(appointment.Amount * 100))
	order, err := uc.PaymentGateway.CreateOrder(ctx, &requests.GatewayOrderRequest{
		Amount:   minorUnits,
		Currency: uc.InternalConfig.PaymentGateway.Currency,
		Receipt:  request.AppointmentID,
	})
	if err != nil {
		return nil, err
	}

	appointment, unlock, err := uc.loadAppointmentLocked(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// A cancel can race the gateway call; never attach an order to an
	// appointment that went terminal in the meantime.
	if appointment.IsCancelled() {
		return nil, exceptions.ErrAppointmentAlreadyTerminal(fmt.Errorf("appointment %s was cancelled while the order was being created", request.AppointmentID))
	}

	orderCreatedAt := time.Unix(order.CreatedAt, 0)
	appointment.Payment.OrderID = order.ID
	appointment.Payment.OrderAmount = order.Amount
	appointment.Payment.OrderCreatedAt = &orderCreatedAt
	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.CreatePaymentOrder succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.Int64(constvars.LoggingAmountKey, order.Amount),
	)
	return &responses.PaymentOrder{
		OrderID:    order.ID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Fee:        appointment.Amount,
		DoctorName: appointment.DoctorData.Name,
	}, nil
}

func (uc *paymentUsecase) VerifyPayment(ctx context.Context, request *requests.VerifyPaymentRequest, session *models.Session) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.VerifyPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
	)

	appointment, unlock, err := uc.loadAppointmentLocked(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !ownsAppointment(appointment, session) {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("session role %s cannot verify payment for appointment %s", session.Role, request.AppointmentID))
	}
	if appointment.Payment.OrderID == "" || appointment.Payment.OrderID != request.OrderID {
		return nil, exceptions.ErrPaymentOrderMissing(fmt.Errorf("appointment %s has no matching order %s", request.AppointmentID, request.OrderID))
	}

	if err := uc.PaymentGateway.VerifySignature(request.OrderID, request.PaymentID, request.Signature); err != nil {
		return nil, err
	}

	// A replayed verification keeps the original payment date.
	if !appointment.Payment.Paid {
		now := time.Now()
		appointment.Payment.Paid = true
		appointment.Payment.PaymentID = request.PaymentID
		appointment.Payment.PaymentDate = &now
		if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
			return nil, err
		}

		if uc.NotificationPublisher != nil {
			if publishErr := uc.NotificationPublisher.PublishNotification(ctx, &contracts.NotificationMessage{
				EventType:     constvars.NotificationPaymentVerified,
				AppointmentID: request.AppointmentID,
				PatientEmail:  appointment.PatientData.Email,
				DoctorName:    appointment.DoctorData.Name,
				SlotDate:      appointment.SlotDate,
				SlotTime:      appointment.SlotTime,
			}); publishErr != nil {
				uc.Log.Error("paymentUsecase.VerifyPayment error publishing notification",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(publishErr),
				)
			}
		}
	}

	uc.Log.Info("paymentUsecase.VerifyPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingPaymentIDKey, request.PaymentID),
	)
	response := buildAppointmentResponse(appointment)
	return &response, nil
}

func (uc *paymentUsecase) loadAppointmentLocked(ctx context.Context, appointmentID string) (*models.Appointment, func(), error) {
	lockKey := fmt.Sprintf(constvars.RedisKeyAppointmentLock, appointmentID)
	lockTTL := time.Duration(uc.InternalConfig.Booking.LockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, nil, err
	}
	if !acquired {
		return nil, nil, exceptions.ErrSlotLockNotAcquired(fmt.Errorf("appointment %s lock held by another request", appointmentID))
	}
	unlock := func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			uc.Log.Error("paymentUsecase error releasing appointment lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
				zap.Error(unlockErr),
			)
		}
	}

	appointment, err := uc.AppointmentRepository.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	if appointment == nil {
		unlock()
		return nil, nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}
	return appointment, unlock, nil
}

func ownsAppointment(appointment *models.Appointment, session *models.Session) bool {
	if session.IsAdmin() {
		return true
	}
	return session.IsPatient() && session.PatientID == appointment.PatientID.Hex()
}

func buildAppointmentResponse(appointment *models.Appointment) responses.Appointment {
	return responses.Appointment{
		ID:           appointment.ID.Hex(),
		PatientID:    appointment.PatientID.Hex(),
		DoctorID:     appointment.DoctorID.Hex(),
		SlotDate:     appointment.SlotDate,
		SlotTime:     appointment.SlotTime,
		Amount:       appointment.Amount,
		Status:       appointment.Status,
		Cancelled:    appointment.IsCancelled(),
		IsCompleted:  appointment.IsCompleted(),
		PatientName:  appointment.PatientData.Name,
		PatientImage: appointment.PatientData.Image,
		DoctorName:   appointment.DoctorData.Name,
		DoctorImage:  appointment.DoctorData.Image,
		Speciality:   appointment.DoctorData.Speciality,
		PaymentPaid:  appointment.Payment.Paid,
		PaymentDate:  appointment.Payment.PaymentDate,
		CreatedAt:    appointment.CreatedAt,
		CompletedAt:  appointment.CompletedAt,
	}
}
