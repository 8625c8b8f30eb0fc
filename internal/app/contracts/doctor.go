package contracts

import (
	"context"

	"medipoint-service/internal/app/models"
	"medipoint-service/internal/pkg/dto/responses"
)

type DoctorRepository interface {
	FindDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindAllDoctors(ctx context.Context) ([]models.Doctor, error)
	UpdateDoctorAvailability(ctx context.Context, doctorID string, available bool) error
	CountDoctors(ctx context.Context) (int64, error)
}

// SlotLedger mutates the slots_booked map on the doctor document. Both
// operations are plain document updates; callers serialize them with the
// per-doctor lock.
type SlotLedger interface {
	ReserveSlot(ctx context.Context, doctorID, slotDate, slotTime string) error
	ReleaseSlot(ctx context.Context, doctorID, slotDate, slotTime string) error
}

type DoctorUsecase interface {
	ListDoctors(ctx context.Context) ([]responses.Doctor, error)
	ToggleAvailability(ctx context.Context, doctorID string, available bool) error
	GetDoctorDashboard(ctx context.Context, doctorID string) (*responses.DoctorDashboard, error)
	GetAdminDashboard(ctx context.Context) (*responses.AdminDashboard, error)
}
