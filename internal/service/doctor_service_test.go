package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/domain/doctor"
	"github.com/caremesh/hospital-api/pkg/storage"
)

func newDoctorFixture(t *testing.T) (*DoctorService, *doctor.Doctor) {
	t.Helper()

	repo := newFakeDoctorRepo()
	photos, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	d := &doctor.Doctor{Name: "Dr. Osei", ImageURL: "/uploads/doctors/old.png"}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatal(err)
	}

	return NewDoctorService(repo, photos, newTestAuditService(), zap.NewNop()), d
}

func TestUploadPhoto(t *testing.T) {
	svc, d := newDoctorFixture(t)

	updated, err := svc.UploadPhoto(context.Background(), d.ID, "headshot.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadPhoto: %v", err)
	}

	if !strings.HasPrefix(updated.ImageURL, "/uploads/doctors/") {
		t.Errorf("ImageURL = %q, want an /uploads/doctors/ path", updated.ImageURL)
	}
	if !strings.HasSuffix(updated.ImageURL, "headshot.png") {
		t.Errorf("ImageURL = %q, want the original file name preserved", updated.ImageURL)
	}
	if updated.CertificateURL != "" {
		t.Error("photo upload must not touch the certificate reference")
	}
}

func TestUploadCertificate(t *testing.T) {
	svc, d := newDoctorFixture(t)

	updated, err := svc.UploadCertificate(context.Background(), d.ID, "degree.pdf", strings.NewReader("pdf-bytes"))
	if err != nil {
		t.Fatalf("UploadCertificate: %v", err)
	}

	if !strings.HasPrefix(updated.CertificateURL, "/uploads/doctors/") {
		t.Errorf("CertificateURL = %q, want an /uploads/doctors/ path", updated.CertificateURL)
	}
	if !strings.HasSuffix(updated.CertificateURL, "degree.pdf") {
		t.Errorf("CertificateURL = %q, want the original file name preserved", updated.CertificateURL)
	}
	if updated.ImageURL != "/uploads/doctors/old.png" {
		t.Error("certificate upload must not touch the photo reference")
	}
}

func TestUploadUnknownDoctor(t *testing.T) {
	svc, _ := newDoctorFixture(t)

	if _, err := svc.UploadPhoto(context.Background(), uuid.New(), "a.png", strings.NewReader("x")); !errors.Is(err, doctor.ErrDoctorNotFound) {
		t.Fatalf("photo: expected doctor not found, got %v", err)
	}
	if _, err := svc.UploadCertificate(context.Background(), uuid.New(), "a.pdf", strings.NewReader("x")); !errors.Is(err, doctor.ErrDoctorNotFound) {
		t.Fatalf("certificate: expected doctor not found, got %v", err)
	}
}
