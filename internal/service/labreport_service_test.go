package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/domain/labreport"
	"github.com/caremesh/hospital-api/pkg/storage"
)

type fakeLabReportRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*labreport.LabReport
}

func newFakeLabReportRepo() *fakeLabReportRepo {
	return &fakeLabReportRepo{byID: make(map[uuid.UUID]*labreport.LabReport)}
}

func (r *fakeLabReportRepo) Create(_ context.Context, lr *labreport.LabReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lr.ID == uuid.Nil {
		lr.ID = uuid.New()
	}
	r.byID[lr.ID] = lr
	return nil
}

func (r *fakeLabReportRepo) GetByID(_ context.Context, id uuid.UUID) (*labreport.LabReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lr, ok := r.byID[id]
	if !ok {
		return nil, labreport.ErrReportNotFound
	}
	return lr, nil
}

func (r *fakeLabReportRepo) FindByPatientName(_ context.Context, patientName string) ([]*labreport.LabReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*labreport.LabReport
	for _, lr := range r.byID {
		if lr.PatientName == patientName {
			out = append(out, lr)
		}
	}
	return out, nil
}

func (r *fakeLabReportRepo) FindAll(_ context.Context) ([]*labreport.LabReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*labreport.LabReport, 0, len(r.byID))
	for _, lr := range r.byID {
		out = append(out, lr)
	}
	return out, nil
}

func newLabReportFixture(t *testing.T) *LabReportService {
	t.Helper()

	files, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewLabReportService(newFakeLabReportRepo(), files, newTestAuditService(), zap.NewNop())
}

func TestSaveReportDatesWithLocalCalendarDay(t *testing.T) {
	svc := newLabReportFixture(t)

	r, err := svc.SaveReport(context.Background(), "cbc.pdf", strings.NewReader("pdf-bytes"), "Alice Kim", "Dr. Osei", "CBC")
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	year, month, day := time.Now().Date()
	want := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	if !r.ReportDate.Equal(want) {
		t.Errorf("ReportDate = %v, want today's local date %v", r.ReportDate, want)
	}
}

func TestSaveReportStoresFile(t *testing.T) {
	svc := newLabReportFixture(t)

	r, err := svc.SaveReport(context.Background(), "cbc.pdf", strings.NewReader("pdf-bytes"), "Alice Kim", "", "CBC")
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	if !strings.HasSuffix(r.FileName, "cbc.pdf") {
		t.Errorf("FileName = %q, want the original name preserved", r.FileName)
	}

	f, err := svc.OpenFile(r.FileName)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "pdf-bytes" {
		t.Errorf("stored content = %q", content)
	}

	byPatient, err := svc.GetReportsByPatient(context.Background(), "Alice Kim")
	if err != nil {
		t.Fatal(err)
	}
	if len(byPatient) != 1 {
		t.Errorf("by patient: got %d reports, want 1", len(byPatient))
	}
}
