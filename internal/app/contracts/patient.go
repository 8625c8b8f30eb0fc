package contracts

import (
	"context"

	"medipoint-service/internal/app/models"
)

type PatientRepository interface {
	FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error)
	CountPatients(ctx context.Context) (int64, error)
}
