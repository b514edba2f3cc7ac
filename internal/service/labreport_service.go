package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/domain/labreport"
	"github.com/caremesh/hospital-api/pkg/storage"
)

type LabReportService struct {
	repo     labreport.Repository
	files    *storage.Store
	auditSvc *AuditService
	log      *zap.Logger
}

func NewLabReportService(repo labreport.Repository, files *storage.Store, auditSvc *AuditService, log *zap.Logger) *LabReportService {
	return &LabReportService{repo: repo, files: files, auditSvc: auditSvc, log: log}
}

// SaveReport stores the uploaded document and records its metadata, dated
// today.
func (s *LabReportService) SaveReport(ctx context.Context, fileName string, file io.Reader, patientName, doctorName, testName string) (*labreport.LabReport, error) {
	stored, err := s.files.Save(fileName, file)
	if err != nil {
		s.log.Error("failed to store lab report file", zap.Error(err))
		return nil, fmt.Errorf("storing report file: %w", err)
	}

	// Local calendar date, not a UTC truncation: east of UTC the latter can
	// land on yesterday.
	year, month, day := time.Now().Date()

	r := &labreport.LabReport{
		PatientName: patientName,
		DoctorName:  doctorName,
		TestName:    testName,
		ReportDate:  time.Date(year, month, day, 0, 0, 0, 0, time.Local),
		FilePath:    s.files.Path(stored),
		FileName:    stored,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating lab report: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "create", "lab_report", r.ID.String()))

	return r, nil
}

func (s *LabReportService) GetReport(ctx context.Context, id uuid.UUID) (*labreport.LabReport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LabReportService) GetAllReports(ctx context.Context) ([]*labreport.LabReport, error) {
	return s.repo.FindAll(ctx)
}

func (s *LabReportService) GetReportsByPatient(ctx context.Context, patientName string) ([]*labreport.LabReport, error) {
	return s.repo.FindByPatientName(ctx, patientName)
}

// OpenFile returns the stored document for download. The caller closes it.
func (s *LabReportService) OpenFile(fileName string) (*os.File, error) {
	return s.files.Open(fileName)
}
