package doctors

import (
	"context"
	"fmt"
	"sync"

	"medipoint-service/internal/app/contracts"
	"medipoint-service/internal/app/models"
	"medipoint-service/internal/pkg/constvars"
	"medipoint-service/internal/pkg/dto/responses"
	"medipoint-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	PatientRepository     contracts.PatientRepository
	AppointmentRepository contracts.AppointmentRepository
	Log                   *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	appointmentRepository contracts.AppointmentRepository,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		doctorUsecaseInstance = &doctorUsecase{
			DoctorRepository:      doctorRepository,
			PatientRepository:     patientRepository,
			AppointmentRepository: appointmentRepository,
			Log:                   logger,
		}
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) ListDoctors(ctx context.Context) ([]responses.Doctor, error) {
	doctors, err := uc.DoctorRepository.FindAllDoctors(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]responses.Doctor, 0, len(doctors))
	for i := range doctors {
		result = append(result, buildDoctorResponse(&doctors[i]))
	}
	return result, nil
}

func (uc *doctorUsecase) ToggleAvailability(ctx context.Context, doctorID string, available bool) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ToggleAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Bool("available", available),
	)

	doctor, err := uc.DoctorRepository.FindDoctorByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", doctorID))
	}

	return uc.DoctorRepository.UpdateDoctorAvailability(ctx, doctorID, available)
}

func (uc *doctorUsecase) GetDoctorDashboard(ctx context.Context, doctorID string) (*responses.DoctorDashboard, error) {
	appointments, err := uc.AppointmentRepository.FindAppointmentsByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	var earnings float64
	uniquePatients := make(map[string]struct{})
	for i := range appointments {
		appointment := &appointments[i]
		if appointment.IsCompleted() || appointment.Payment.Paid {
			earnings += appointment.Amount
		}
		uniquePatients[appointment.PatientID.Hex()] = struct{}{}
	}

	return &responses.DoctorDashboard{
		Earnings:           earnings,
		Appointments:       len(appointments),
		Patients:           len(uniquePatients),
		LatestAppointments: latestAppointments(appointments, 5),
	}, nil
}

func (uc *doctorUsecase) GetAdminDashboard(ctx context.Context) (*responses.AdminDashboard, error) {
	doctorCount, err := uc.DoctorRepository.CountDoctors(ctx)
	if err != nil {
		return nil, err
	}
	patientCount, err := uc.PatientRepository.CountPatients(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := uc.AppointmentRepository.FindAllAppointments(ctx)
	if err != nil {
		return nil, err
	}

	return &responses.AdminDashboard{
		Doctors:            int(doctorCount),
		Appointments:       len(appointments),
		Patients:           int(patientCount),
		LatestAppointments: latestAppointments(appointments, 5),
	}, nil
}

func buildDoctorResponse(doctor *models.Doctor) responses.Doctor {
	return responses.Doctor{
		ID:         doctor.ID.Hex(),
		Name:       doctor.Name,
		Speciality: doctor.Speciality,
		Image:      doctor.Image,
		Degree:     doctor.Degree,
		Experience: doctor.Experience,
		About:      doctor.About,
		Fees:       doctor.Fees,
		Available:  doctor.Available,
	}
}

// latestAppointments expects the repository sort order, newest first.
func latestAppointments(appointments []models.Appointment, limit int) []responses.Appointment {
	if len(appointments) > limit {
		appointments = appointments[:limit]
	}
	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		appointment := &appointments[i]
		result = append(result, responses.Appointment{
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
		})
	}
	return result
}
