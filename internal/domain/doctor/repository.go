package doctor

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the directory of doctor records. GetByID and GetByName
// return ErrDoctorNotFound when no record matches.
type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByName(ctx context.Context, name string) (*Doctor, error)
	FindAll(ctx context.Context) ([]*Doctor, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, d *Doctor) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
