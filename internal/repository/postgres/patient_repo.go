package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caremesh/hospital-api/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) GetByName(ctx context.Context, name string) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) FindAll(ctx context.Context) ([]*patient.Patient, error) {
	var out []*patient.Patient
	err := r.db.WithContext(ctx).Order("created_at").Find(&out).Error
	return out, err
}

func (r *PatientRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *PatientRepository) Update(ctx context.Context, p *patient.Patient) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PatientRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&patient.Patient{}, "id = ?", id).Error
}
