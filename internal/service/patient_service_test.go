package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/domain/doctor"
	"github.com/caremesh/hospital-api/internal/domain/patient"
)

func newPatientService(t *testing.T) (*PatientService, *fakePatientRepo, *fakeDoctorRepo) {
	t.Helper()
	repo := newFakePatientRepo()
	doctorRepo := newFakeDoctorRepo()
	return NewPatientService(repo, doctorRepo, newTestAuditService(), zap.NewNop()), repo, doctorRepo
}

func TestCreatePatientRequiresName(t *testing.T) {
	svc, _, _ := newPatientService(t)

	_, err := svc.CreatePatient(context.Background(), &patient.CreatePatientCommand{Name: "   "})

	var validErr *ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterPlaceholder(t *testing.T) {
	svc, _, _ := newPatientService(t)

	p, err := svc.RegisterPlaceholder(context.Background(), "jdoe")
	if err != nil {
		t.Fatalf("RegisterPlaceholder: %v", err)
	}

	if p.Name != "jdoe" {
		t.Errorf("Name = %q, want the username", p.Name)
	}
	if p.Age != 0 {
		t.Errorf("Age = %d, want 0", p.Age)
	}
	if p.Gender != patient.PlaceholderGender {
		t.Errorf("Gender = %q, want %q", p.Gender, patient.PlaceholderGender)
	}
	if p.ContactNumber != patient.PlaceholderContact {
		t.Errorf("ContactNumber = %q, want %q", p.ContactNumber, patient.PlaceholderContact)
	}
	if p.MedicalHistory != patient.PlaceholderHistory {
		t.Errorf("MedicalHistory = %q, want %q", p.MedicalHistory, patient.PlaceholderHistory)
	}
}

func TestUpdatePatientDropsUnknownDoctor(t *testing.T) {
	svc, _, doctorRepo := newPatientService(t)

	d := &doctor.Doctor{Name: "Dr. Osei"}
	if err := doctorRepo.Create(context.Background(), d); err != nil {
		t.Fatal(err)
	}

	p, err := svc.CreatePatient(context.Background(), &patient.CreatePatientCommand{Name: "Alice Kim"})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdatePatient(context.Background(), p.ID, &patient.UpdatePatientCommand{
		AssignedDoctorID: &d.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.AssignedDoctorID == nil || *updated.AssignedDoctorID != d.ID {
		t.Error("known doctor reference must resolve")
	}

	unknown := uuid.New()
	updated, err = svc.UpdatePatient(context.Background(), p.ID, &patient.UpdatePatientCommand{
		AssignedDoctorID: &unknown,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.AssignedDoctorID != nil {
		t.Error("unknown doctor reference must be dropped, not rejected")
	}
	if updated.Name != "Alice Kim" {
		t.Error("untouched fields must survive the merge")
	}
}

func TestDeletePatientNotFound(t *testing.T) {
	svc, _, _ := newPatientService(t)

	if err := svc.DeletePatient(context.Background(), uuid.New()); !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("expected patient not found, got %v", err)
	}
}
