package labreport

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *LabReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabReport, error)
	FindByPatientName(ctx context.Context, patientName string) ([]*LabReport, error)
	FindAll(ctx context.Context) ([]*LabReport, error)
}
