// Package postgres implements the domain repository interfaces on gorm.
package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caremesh/hospital-api/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Insert(ctx context.Context, a *appointment.Appointment) error {
	// The patient and doctor associations are already-persisted directory
	// records; omit them so Create never writes back into the directory.
	return r.db.WithContext(ctx).Omit("Patient", "Doctor").Create(a).Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("doctor_id = ?", doctorID).
		Order("scheduled_at").
		Find(&out).Error
	return out, err
}

func (r *AppointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("scheduled_at").
		Find(&out).Error
	return out, err
}

func (r *AppointmentRepository) FindAll(ctx context.Context) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Order("scheduled_at").
		Find(&out).Error
	return out, err
}

func (r *AppointmentRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *AppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	return r.db.WithContext(ctx).Omit("Patient", "Doctor").Save(a).Error
}

func (r *AppointmentRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&appointment.Appointment{}, "id = ?", id).Error
}
