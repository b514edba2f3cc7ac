package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the directory of patient records. GetByID and GetByName
// return ErrPatientNotFound when no record matches.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByName(ctx context.Context, name string) (*Patient, error)
	FindAll(ctx context.Context) ([]*Patient, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, p *Patient) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
