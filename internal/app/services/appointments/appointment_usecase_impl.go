package appointments

import (
	"context"
	"fmt"
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

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	PatientRepository     contracts.PatientRepository
	SlotLedger            contracts.SlotLedger
	LockerService         contracts.LockerService
	NotificationPublisher contracts.NotificationPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	slotLedger contracts.SlotLedger,
	lockerService contracts.LockerService,
	notificationPublisher contracts.NotificationPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			DoctorRepository:      doctorRepository,
			PatientRepository:     patientRepository,
			SlotLedger:            slotLedger,
			LockerService:         lockerService,
			NotificationPublisher: notificationPublisher,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) BookAppointment(ctx context.Context, request *requests.BookAppointmentRequest) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.BookAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingSlotDateKey, request.SlotDate),
		zap.String(constvars.LoggingSlotTimeKey, request.SlotTime),
	)

	patient, err := uc.PatientRepository.FindPatientByID(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(fmt.Errorf("patient %s not found", request.PatientID))
	}

	lockKey := fmt.Sprintf(constvars.RedisKeyDoctorSlotsLock, request.DoctorID)
	lockTTL := time.Duration(uc.InternalConfig.Booking.LockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSlotLockNotAcquired(fmt.Errorf("doctor %s slot lock held by another request", request.DoctorID))
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Error("appointmentUsecase.BookAppointment error releasing doctor slot lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	// Read the doctor under the lock so the ledger check sees the latest
	// committed reservation.
	doctor, err := uc.DoctorRepository.FindDoctorByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", request.DoctorID))
	}
	if !doctor.Available {
		return nil, exceptions.ErrDoctorUnavailable(fmt.Errorf("doctor %s is not accepting bookings", request.DoctorID))
	}
	if doctor.SlotTaken(request.SlotDate, request.SlotTime) {
		return nil, exceptions.ErrSlotTaken(fmt.Errorf("slot %s %s already booked for doctor %s", request.SlotDate, request.SlotTime, request.DoctorID))
	}

	if err := uc.SlotLedger.ReserveSlot(ctx, request.DoctorID, request.SlotDate, request.SlotTime); err != nil {
		return nil, err
	}

	now := time.Now()
	appointment := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		SlotDate:  request.SlotDate,
		SlotTime:  request.SlotTime,
		Amount:    doctor.Fees,
		PatientData: models.PatientSnapshot{
			Name:  patient.Name,
			Email: patient.Email,
			Image: patient.Image,
			Phone: patient.Phone,
		},
		DoctorData: models.DoctorSnapshot{
			Name:       doctor.Name,
			Speciality: doctor.Speciality,
			Image:      doctor.Image,
			Fees:       doctor.Fees,
			Address:    doctor.Address,
		},
		Status:    constvars.AppointmentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	appointment, err = uc.AppointmentRepository.InsertAppointment(ctx, appointment)
	if err != nil {
		// Roll back the reservation so the slot is not stranded.
		if releaseErr := uc.SlotLedger.ReleaseSlot(ctx, request.DoctorID, request.SlotDate, request.SlotTime); releaseErr != nil {
			uc.Log.Error("appointmentUsecase.BookAppointment error rolling back slot reservation",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
				zap.Error(releaseErr),
			)
		}
		return nil, err
	}

	uc.publishNotification(ctx, &contracts.NotificationMessage{
		EventType:     constvars.NotificationAppointmentBooked,
		AppointmentID: appointment.ID.Hex(),
		PatientEmail:  patient.Email,
		DoctorName:    doctor.Name,
		SlotDate:      request.SlotDate,
		SlotTime:      request.SlotTime,
	})

	uc.Log.Info("appointmentUsecase.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
	)
	response := buildAppointmentResponse(appointment)
	return &response, nil
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID string, session *models.Session) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, unlock, err := uc.loadAppointmentLocked(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !canCancel(appointment, session) {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("session role %s cannot cancel appointment %s", session.Role, appointmentID))
	}
	if appointment.IsTerminal() {
		return nil, exceptions.ErrAppointmentAlreadyTerminal(fmt.Errorf("appointment %s is %s", appointmentID, appointment.Status))
	}

	now := time.Now()
	appointment.Status = constvars.AppointmentStatusCancelled
	appointment.CancelledAt = &now
	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	// Hand the slot back. The $pull is idempotent, so a retried cancel
	// cannot corrupt the ledger.
	if err := uc.SlotLedger.ReleaseSlot(ctx, appointment.DoctorID.Hex(), appointment.SlotDate, appointment.SlotTime); err != nil {
		uc.Log.Error("appointmentUsecase.CancelAppointment error releasing slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishNotification(ctx, &contracts.NotificationMessage{
		EventType:     constvars.NotificationAppointmentCancelled,
		AppointmentID: appointmentID,
		PatientEmail:  appointment.PatientData.Email,
		DoctorName:    appointment.DoctorData.Name,
		SlotDate:      appointment.SlotDate,
		SlotTime:      appointment.SlotTime,
	})

	uc.Log.Info("appointmentUsecase.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	response := buildAppointmentResponse(appointment)
	return &response, nil
}

func (uc *appointmentUsecase) CompleteAppointment(ctx context.Context, appointmentID string, session *models.Session) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CompleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, unlock, err := uc.loadAppointmentLocked(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !canComplete(appointment, session) {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("session role %s cannot complete appointment %s", session.Role, appointmentID))
	}
	if appointment.IsTerminal() {
		return nil, exceptions.ErrAppointmentAlreadyTerminal(fmt.Errorf("appointment %s is %s", appointmentID, appointment.Status))
	}

	now := time.Now()
	appointment.Status = constvars.AppointmentStatusCompleted
	appointment.CompletedAt = &now
	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	// Completed appointments keep their ledger entry; the visit happened.

	uc.Log.Info("appointmentUsecase.CompleteAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	response := buildAppointmentResponse(appointment)
	return &response, nil
}

func (uc *appointmentUsecase) ListPatientAppointments(ctx context.Context, patientID string) ([]responses.Appointment, error) {
	appointments, err := uc.AppointmentRepository.FindAppointmentsByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return buildAppointmentResponses(appointments), nil
}

func (uc *appointmentUsecase) ListDoctorAppointments(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	appointments, err := uc.AppointmentRepository.FindAppointmentsByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return buildAppointmentResponses(appointments), nil
}

func (uc *appointmentUsecase) ListAllAppointments(ctx context.Context) ([]responses.Appointment, error) {
	appointments, err := uc.AppointmentRepository.FindAllAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return buildAppointmentResponses(appointments), nil
}

// loadAppointmentLocked acquires the per-appointment lock and reads the
// appointment under it, so concurrent lifecycle transitions serialize. The
// returned unlock func is safe to defer immediately.
func (uc *appointmentUsecase) loadAppointmentLocked(ctx context.Context, appointmentID string) (*models.Appointment, func(), error) {
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
			uc.Log.Error("appointmentUsecase error releasing appointment lock",
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

// publishNotification is best effort. A failed publish is logged and never
// fails the booking flow.
func (uc *appointmentUsecase) publishNotification(ctx context.Context, message *contracts.NotificationMessage) {
	if uc.NotificationPublisher == nil {
		return
	}
	if err := uc.NotificationPublisher.PublishNotification(ctx, message); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("appointmentUsecase error publishing notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, message.AppointmentID),
			zap.Error(err),
		)
	}
}

func canCancel(appointment *models.Appointment, session *models.Session) bool {
	switch {
	case session.IsAdmin():
		return true
	case session.IsPatient():
		return session.PatientID == appointment.PatientID.Hex()
	case session.IsDoctor():
		return session.DoctorID == appointment.DoctorID.Hex()
	default:
		return false
	}
}

func canComplete(appointment *models.Appointment, session *models.Session) bool {
	switch {
	case session.IsAdmin():
		return true
	case session.IsDoctor():
		return session.DoctorID == appointment.DoctorID.Hex()
	default:
		return false
	}
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

func buildAppointmentResponses(appointments []models.Appointment) []responses.Appointment {
	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, buildAppointmentResponse(&appointments[i]))
	}
	return result
}
