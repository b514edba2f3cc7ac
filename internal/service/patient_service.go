package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/domain/doctor"
	"github.com/caremesh/hospital-api/internal/domain/patient"
)

type PatientService struct {
	repo       patient.Repository
	doctorRepo doctor.Repository
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewPatientService(repo patient.Repository, doctorRepo doctor.Repository, auditSvc *AuditService, log *zap.Logger) *PatientService {
	return &PatientService{repo: repo, doctorRepo: doctorRepo, auditSvc: auditSvc, log: log}
}

func (s *PatientService) CreatePatient(ctx context.Context, cmd *patient.CreatePatientCommand) (*patient.Patient, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, &ValidationError{Fields: []string{"name is required"}}
	}

	p := &patient.Patient{
		Name:             strings.TrimSpace(cmd.Name),
		Age:              cmd.Age,
		Gender:           cmd.Gender,
		ContactNumber:    cmd.ContactNumber,
		MedicalHistory:   cmd.MedicalHistory,
		AssignedDoctorID: cmd.AssignedDoctorID,
		LabTestsRequired: cmd.LabTestsRequired,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "create", "patient", p.ID.String()))

	return p, nil
}

// RegisterPlaceholder creates the skeletal patient record that backs a
// self-registered account. The front desk fills in real details later.
func (s *PatientService) RegisterPlaceholder(ctx context.Context, username string) (*patient.Patient, error) {
	return s.CreatePatient(ctx, &patient.CreatePatientCommand{
		Name:           username,
		Age:            0,
		Gender:         patient.PlaceholderGender,
		ContactNumber:  patient.PlaceholderContact,
		MedicalHistory: patient.PlaceholderHistory,
	})
}

func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) GetAllPatients(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.FindAll(ctx)
}

// UpdatePatient merges the supplied fields. An assigned-doctor reference that
// fails to resolve is dropped to nil, matching the appointment merge policy.
func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		p.Name = *cmd.Name
	}
	if cmd.Age != nil {
		p.Age = *cmd.Age
	}
	if cmd.Gender != nil {
		p.Gender = *cmd.Gender
	}
	if cmd.ContactNumber != nil {
		p.ContactNumber = *cmd.ContactNumber
	}
	if cmd.MedicalHistory != nil {
		p.MedicalHistory = *cmd.MedicalHistory
	}
	if cmd.LabTestsRequired != nil {
		p.LabTestsRequired = *cmd.LabTestsRequired
	}

	if cmd.AssignedDoctorID != nil {
		d, err := s.doctorRepo.GetByID(ctx, *cmd.AssignedDoctorID)
		switch {
		case err == nil:
			p.AssignedDoctorID = &d.ID
		case errors.Is(err, doctor.ErrDoctorNotFound):
			p.AssignedDoctorID = nil
		default:
			return nil, fmt.Errorf("resolving doctor: %w", err)
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.log.Error("failed to update patient", zap.Error(err))
		return nil, fmt.Errorf("updating patient: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "update", "patient", id.String()))

	return p, nil
}

func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("checking patient existence: %w", err)
	}
	if !exists {
		return patient.ErrPatientNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting patient: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "delete", "patient", id.String()))

	return nil
}
