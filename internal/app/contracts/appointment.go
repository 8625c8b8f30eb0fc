package contracts

import (
	"context"

	"medipoint-service/internal/app/models"
	"medipoint-service/internal/pkg/dto/requests"
	"medipoint-service/internal/pkg/dto/responses"
)

type AppointmentRepository interface {
	InsertAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, appointment *models.Appointment) error
	FindAppointmentsByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error)
	FindAppointmentsByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindAllAppointments(ctx context.Context) ([]models.Appointment, error)
	CountAppointments(ctx context.Context) (int64, error)
}

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, request *requests.BookAppointmentRequest) (*responses.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string, session *models.Session) (*responses.Appointment, error)
	CompleteAppointment(ctx context.Context, appointmentID string, session *models.Session) (*responses.Appointment, error)
	ListPatientAppointments(ctx context.Context, patientID string) ([]responses.Appointment, error)
	ListDoctorAppointments(ctx context.Context, doctorID string) ([]responses.Appointment, error)
	ListAllAppointments(ctx context.Context) ([]responses.Appointment, error)
}
