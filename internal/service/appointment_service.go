package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/domain/appointment"
	"github.com/caremesh/hospital-api/internal/domain/doctor"
	"github.com/caremesh/hospital-api/internal/domain/patient"
)

// doctorLocks serializes the read-check-insert booking sequence per doctor.
// Without it two concurrent requests for the same doctor can both pass the
// availability check before either insert lands. Entries are never evicted;
// doctor cardinality is small.
type doctorLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func (d *doctorLocks) acquire(id uuid.UUID) func() {
	d.mu.Lock()
	if d.locks == nil {
		d.locks = make(map[uuid.UUID]*sync.Mutex)
	}
	l, ok := d.locks[id]
	if !ok {
		l = &sync.Mutex{}
		d.locks[id] = l
	}
	d.mu.Unlock()

	l.Lock()
	return l.Unlock
}

type AppointmentService struct {
	repo        appointment.Repository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	auditSvc    *AuditService
	log         *zap.Logger
	booking     doctorLocks
}

func NewAppointmentService(
	repo appointment.Repository,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	auditSvc *AuditService,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		auditSvc:    auditSvc,
		log:         log,
	}
}

// Book validates and persists a new appointment.
//
// The availability check runs before the patient and doctor references are
// resolved, so a conflict on a busy slot is reported even when the submitted
// doctor id turns out not to exist. Callers observe the conflict error first.
func (s *AppointmentService) Book(ctx context.Context, cmd *appointment.CreateAppointmentCommand) (*appointment.Appointment, error) {
	if cmd.DoctorID != nil && cmd.ScheduledAt != nil {
		release := s.booking.acquire(*cmd.DoctorID)
		defer release()

		existing, err := s.repo.FindByDoctorID(ctx, *cmd.DoctorID)
		if err != nil {
			return nil, fmt.Errorf("checking doctor schedule: %w", err)
		}
		for _, e := range existing {
			if e.Blocks(*cmd.ScheduledAt) {
				return nil, appointment.ErrSchedulingConflict
			}
		}
	}

	if cmd.PatientID == nil {
		return nil, &ValidationError{Fields: []string{"Patient ID is required"}}
	}
	p, err := s.patientRepo.GetByID(ctx, *cmd.PatientID)
	if err != nil {
		return nil, err
	}

	if cmd.DoctorID == nil {
		return nil, &ValidationError{Fields: []string{"Doctor ID is required"}}
	}
	d, err := s.doctorRepo.GetByID(ctx, *cmd.DoctorID)
	if err != nil {
		return nil, err
	}

	status := cmd.Status
	if status == "" {
		status = appointment.StatusScheduled
	}

	a := &appointment.Appointment{
		PatientID:        &p.ID,
		DoctorID:         &d.ID,
		Patient:          p,
		Doctor:           d,
		Reason:           cmd.Reason,
		Status:           status,
		LabTestsRequired: cmd.LabTestsRequired,
	}
	if cmd.ScheduledAt != nil {
		a.ScheduledAt = appointment.NewDateTime(*cmd.ScheduledAt)
	}

	if err := s.repo.Insert(ctx, a); err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "create", "appointment", a.ID.String()))

	s.log.Info("appointment booked",
		zap.String("appointment_id", a.ID.String()),
		zap.String("doctor_id", d.ID.String()),
		zap.String("patient_id", p.ID.String()),
	)

	return a, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) GetAllAppointments(ctx context.Context) ([]*appointment.Appointment, error) {
	return s.repo.FindAll(ctx)
}

func (s *AppointmentService) GetAppointmentsByPatient(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	return s.repo.FindByPatientID(ctx, patientID)
}

func (s *AppointmentService) GetAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*appointment.Appointment, error) {
	return s.repo.FindByDoctorID(ctx, doctorID)
}

// UpdateAppointment merges the supplied fields into the stored record. A
// patient or doctor reference that fails to re-resolve is dropped to nil
// rather than failing the request, and the availability check is not re-run
// even when the time changes.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.ScheduledAt != nil {
		a.ScheduledAt = appointment.NewDateTime(*cmd.ScheduledAt)
	}
	if cmd.Reason != nil {
		a.Reason = *cmd.Reason
	}
	if cmd.Status != nil {
		a.Status = *cmd.Status
	}
	if cmd.LabTestsRequired != nil {
		a.LabTestsRequired = *cmd.LabTestsRequired
	}

	if cmd.PatientID != nil {
		p, err := s.patientRepo.GetByID(ctx, *cmd.PatientID)
		switch {
		case err == nil:
			a.PatientID = &p.ID
			a.Patient = p
		case errors.Is(err, patient.ErrPatientNotFound):
			a.PatientID = nil
			a.Patient = nil
		default:
			return nil, fmt.Errorf("resolving patient: %w", err)
		}
	}

	if cmd.DoctorID != nil {
		d, err := s.doctorRepo.GetByID(ctx, *cmd.DoctorID)
		switch {
		case err == nil:
			a.DoctorID = &d.ID
			a.Doctor = d
		case errors.Is(err, doctor.ErrDoctorNotFound):
			a.DoctorID = nil
			a.Doctor = nil
		default:
			return nil, fmt.Errorf("resolving doctor: %w", err)
		}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.log.Error("failed to update appointment", zap.Error(err))
		return nil, fmt.Errorf("updating appointment: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "update", "appointment", id.String()))

	return a, nil
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("checking appointment existence: %w", err)
	}
	if !exists {
		return appointment.ErrAppointmentNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "delete", "appointment", id.String()))

	return nil
}
