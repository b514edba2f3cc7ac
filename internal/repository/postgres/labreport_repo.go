package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caremesh/hospital-api/internal/domain/labreport"
)

type LabReportRepository struct {
	db *gorm.DB
}

func NewLabReportRepository(db *gorm.DB) *LabReportRepository {
	return &LabReportRepository{db: db}
}

func (r *LabReportRepository) Create(ctx context.Context, lr *labreport.LabReport) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *LabReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*labreport.LabReport, error) {
	var lr labreport.LabReport
	err := r.db.WithContext(ctx).First(&lr, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, labreport.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *LabReportRepository) FindByPatientName(ctx context.Context, patientName string) ([]*labreport.LabReport, error) {
	var out []*labreport.LabReport
	err := r.db.WithContext(ctx).
		Where("patient_name = ?", patientName).
		Order("report_date DESC").
		Find(&out).Error
	return out, err
}

func (r *LabReportRepository) FindAll(ctx context.Context) ([]*labreport.LabReport, error) {
	var out []*labreport.LabReport
	err := r.db.WithContext(ctx).Order("report_date DESC").Find(&out).Error
	return out, err
}
