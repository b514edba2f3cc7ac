package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caremesh/hospital-api/internal/domain/billing"
)

type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Create(ctx context.Context, b *billing.Bill) error {
	return r.db.WithContext(ctx).Omit("Appointment").Create(b).Error
}

func (r *BillRepository) GetByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var b billing.Bill
	err := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("Appointment.Patient").
		Preload("Appointment.Doctor").
		First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billing.ErrBillNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BillRepository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*billing.Bill, error) {
	var b billing.Bill
	err := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("Appointment.Patient").
		Preload("Appointment.Doctor").
		First(&b, "appointment_id = ?", appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billing.ErrBillNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BillRepository) FindAll(ctx context.Context) ([]*billing.Bill, error) {
	var out []*billing.Bill
	err := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("Appointment.Patient").
		Preload("Appointment.Doctor").
		Order("bill_date DESC").
		Find(&out).Error
	return out, err
}

func (r *BillRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&billing.Bill{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *BillRepository) Update(ctx context.Context, b *billing.Bill) error {
	return r.db.WithContext(ctx).Omit("Appointment").Save(b).Error
}

func (r *BillRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&billing.Bill{}, "id = ?", id).Error
}
