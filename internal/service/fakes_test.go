package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/domain"
	"github.com/caremesh/hospital-api/internal/domain/appointment"
	"github.com/caremesh/hospital-api/internal/domain/billing"
	"github.com/caremesh/hospital-api/internal/domain/doctor"
	"github.com/caremesh/hospital-api/internal/domain/patient"
	"github.com/caremesh/hospital-api/pkg/metrics"
)

// Prometheus collectors register globally, so the test binary shares one.
var testCollector = metrics.NewCollector("hospitaltest")

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func newTestAuditService() *AuditService {
	return NewAuditService(&fakeAuditRepo{}, testCollector, zap.NewNop())
}

type fakePatientRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*patient.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{byID: make(map[uuid.UUID]*patient.Patient)}
}

func (r *fakePatientRepo) Create(_ context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.byID[p.ID] = p
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (r *fakePatientRepo) GetByName(_ context.Context, name string) (*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, patient.ErrPatientNotFound
}

func (r *fakePatientRepo) FindAll(_ context.Context) ([]*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*patient.Patient, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePatientRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[id]
	return ok, nil
}

func (r *fakePatientRepo) Update(_ context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *fakePatientRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

type fakeDoctorRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*doctor.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{byID: make(map[uuid.UUID]*doctor.Doctor)}
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *doctor.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.byID[d.ID] = d
	return nil
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	return d, nil
}

func (r *fakeDoctorRepo) GetByName(_ context.Context, name string) (*doctor.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.byID {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, doctor.ErrDoctorNotFound
}

func (r *fakeDoctorRepo) FindAll(_ context.Context) ([]*doctor.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*doctor.Doctor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[id]
	return ok, nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, d *doctor.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[d.ID] = d
	return nil
}

func (r *fakeDoctorRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// fakeAppointmentRepo holds appointments in memory. findDelay widens the gap
// between the availability read and the insert so races surface reliably.
type fakeAppointmentRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*appointment.Appointment
	findDelay time.Duration
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: make(map[uuid.UUID]*appointment.Appointment)}
}

func (r *fakeAppointmentRepo) Insert(_ context.Context, a *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.byID[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return a, nil
}

func (r *fakeAppointmentRepo) FindByDoctorID(_ context.Context, doctorID uuid.UUID) ([]*appointment.Appointment, error) {
	r.mu.Lock()
	var out []*appointment.Appointment
	for _, a := range r.byID {
		if a.DoctorID != nil && *a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	r.mu.Unlock()

	if r.findDelay > 0 {
		time.Sleep(r.findDelay)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByPatientID(_ context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*appointment.Appointment
	for _, a := range r.byID {
		if a.PatientID != nil && *a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindAll(_ context.Context) ([]*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*appointment.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[id]
	return ok, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

type fakeBillRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*billing.Bill
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{byID: make(map[uuid.UUID]*billing.Bill)}
}

func (r *fakeBillRepo) Create(_ context.Context, b *billing.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.byID[b.ID] = b
	return nil
}

func (r *fakeBillRepo) GetByID(_ context.Context, id uuid.UUID) (*billing.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, billing.ErrBillNotFound
	}
	return b, nil
}

func (r *fakeBillRepo) GetByAppointmentID(_ context.Context, appointmentID uuid.UUID) (*billing.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.byID {
		if b.AppointmentID != nil && *b.AppointmentID == appointmentID {
			return b, nil
		}
	}
	return nil, billing.ErrBillNotFound
}

func (r *fakeBillRepo) FindAll(_ context.Context) ([]*billing.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*billing.Bill, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBillRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[id]
	return ok, nil
}

func (r *fakeBillRepo) Update(_ context.Context, b *billing.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[b.ID] = b
	return nil
}

func (r *fakeBillRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}
