package appointment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the durable appointment store. Implementations return
// ErrAppointmentNotFound from GetByID and preload the patient and doctor
// associations on every read.
type Repository interface {
	Insert(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)
	FindAll(ctx context.Context) ([]*Appointment, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, a *Appointment) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
