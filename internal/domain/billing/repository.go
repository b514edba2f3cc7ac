package billing

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the durable bill store. GetByID and GetByAppointmentID
// return ErrBillNotFound when no record matches.
type Repository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*Bill, error)
	FindAll(ctx context.Context) ([]*Bill, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, b *Bill) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
