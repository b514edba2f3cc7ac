package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caremesh/hospital-api/internal/domain/doctor"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) Create(ctx context.Context, d *doctor.Doctor) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) GetByName(ctx context.Context, name string) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) FindAll(ctx context.Context) ([]*doctor.Doctor, error) {
	var out []*doctor.Doctor
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *DoctorRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *DoctorRepository) Update(ctx context.Context, d *doctor.Doctor) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DoctorRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&doctor.Doctor{}, "id = ?", id).Error
}
