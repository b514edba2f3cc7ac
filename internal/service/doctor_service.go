package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/domain/doctor"
	"github.com/caremesh/hospital-api/pkg/storage"
)

type DoctorService struct {
	repo     doctor.Repository
	photos   *storage.Store
	auditSvc *AuditService
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, photos *storage.Store, auditSvc *AuditService, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, photos: photos, auditSvc: auditSvc, log: log}
}

func (s *DoctorService) CreateDoctor(ctx context.Context, cmd *doctor.CreateDoctorCommand) (*doctor.Doctor, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, &ValidationError{Fields: []string{"name is required"}}
	}

	d := &doctor.Doctor{
		Name:            strings.TrimSpace(cmd.Name),
		Specialization:  cmd.Specialization,
		Qualification:   cmd.Qualification,
		Experience:      cmd.Experience,
		ContactNumber:   cmd.ContactNumber,
		Email:           strings.ToLower(strings.TrimSpace(cmd.Email)),
		ImageURL:        cmd.ImageURL,
		Bio:             cmd.Bio,
		ConsultationFee: cmd.ConsultationFee,
		Status:          cmd.Status,
		CertificateURL:  cmd.CertificateURL,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error("failed to create doctor", zap.Error(err))
		return nil, fmt.Errorf("creating doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "create", "doctor", d.ID.String()))

	return d, nil
}

func (s *DoctorService) GetDoctor(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) GetAllDoctors(ctx context.Context) ([]*doctor.Doctor, error) {
	return s.repo.FindAll(ctx)
}

func (s *DoctorService) UpdateDoctor(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		d.Name = *cmd.Name
	}
	if cmd.Specialization != nil {
		d.Specialization = *cmd.Specialization
	}
	if cmd.Qualification != nil {
		d.Qualification = *cmd.Qualification
	}
	if cmd.Experience != nil {
		d.Experience = *cmd.Experience
	}
	if cmd.ContactNumber != nil {
		d.ContactNumber = *cmd.ContactNumber
	}
	if cmd.Email != nil {
		d.Email = strings.ToLower(strings.TrimSpace(*cmd.Email))
	}
	if cmd.ImageURL != nil {
		d.ImageURL = *cmd.ImageURL
	}
	if cmd.Bio != nil {
		d.Bio = *cmd.Bio
	}
	if cmd.ConsultationFee != nil {
		d.ConsultationFee = cmd.ConsultationFee
	}
	if cmd.Status != nil {
		d.Status = *cmd.Status
	}
	if cmd.CertificateURL != nil {
		d.CertificateURL = *cmd.CertificateURL
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.log.Error("failed to update doctor", zap.Error(err))
		return nil, fmt.Errorf("updating doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "update", "doctor", id.String()))

	return d, nil
}

// UploadPhoto stores a profile image and points the doctor's image URL at it.
func (s *DoctorService) UploadPhoto(ctx context.Context, id uuid.UUID, fileName string, file io.Reader) (*doctor.Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored, err := s.photos.Save(fileName, file)
	if err != nil {
		s.log.Error("failed to store doctor photo", zap.Error(err))
		return nil, fmt.Errorf("storing photo: %w", err)
	}

	d.ImageURL = "/uploads/doctors/" + stored
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("updating doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "update", "doctor", id.String()))

	return d, nil
}

// UploadCertificate stores a qualification document and points the doctor's
// certificate URL at it.
func (s *DoctorService) UploadCertificate(ctx context.Context, id uuid.UUID, fileName string, file io.Reader) (*doctor.Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored, err := s.photos.Save(fileName, file)
	if err != nil {
		s.log.Error("failed to store doctor certificate", zap.Error(err))
		return nil, fmt.Errorf("storing certificate: %w", err)
	}

	d.CertificateURL = "/uploads/doctors/" + stored
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("updating doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "update", "doctor", id.String()))

	return d, nil
}

func (s *DoctorService) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("checking doctor existence: %w", err)
	}
	if !exists {
		return doctor.ErrDoctorNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "delete", "doctor", id.String()))

	return nil
}
