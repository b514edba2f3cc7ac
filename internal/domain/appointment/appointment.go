package appointment

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caremesh/hospital-api/internal/domain/doctor"
	"github.com/caremesh/hospital-api/internal/domain/patient"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ConflictWindow is the symmetric exclusion interval around a booked slot:
// no two non-cancelled appointments for the same doctor may be closer than
// this, in either direction.
const ConflictWindow = 30 * time.Minute

const dateTimeLayout = "2006-01-02T15:04:05"

// DateTime is an ISO-8601 local timestamp without a zone offset, the format
// the front office sends and expects back ("2024-01-10T09:00:00").
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) *DateTime {
	return &DateTime{Time: t}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{dateTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid appointment date %q: expected %s", s, dateTimeLayout)
}

func (d DateTime) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *DateTime) Scan(v any) error {
	switch t := v.(type) {
	case time.Time:
		d.Time = t
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateTime", v)
	}
}

// Appointment links exactly one patient to exactly one doctor at a point in
// time. The references are required at booking but the columns stay nullable:
// the partial-update merge drops a reference that no longer resolves instead
// of rejecting the request.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	PatientID *uuid.UUID       `gorm:"column:patient_id;type:uuid;index" json:"-"`
	DoctorID  *uuid.UUID       `gorm:"column:doctor_id;type:uuid;index" json:"-"`
	Patient   *patient.Patient `gorm:"foreignKey:PatientID" json:"patient"`
	Doctor    *doctor.Doctor   `gorm:"foreignKey:DoctorID" json:"doctor"`

	ScheduledAt *DateTime `gorm:"column:scheduled_at;type:timestamp;index" json:"appointmentDate"`
	Reason      string    `gorm:"column:reason;type:text" json:"reason"`
	Status      Status    `gorm:"column:status;type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`

	LabTestsRequired string `gorm:"column:lab_tests_required;type:text" json:"labTestsRequired"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

// Blocks reports whether this appointment makes the candidate time t
// unavailable for the same doctor. Cancelled appointments never block,
// and the window is strict: a gap of exactly 30 minutes is allowed.
func (a *Appointment) Blocks(t time.Time) bool {
	if a.Status == StatusCancelled || a.ScheduledAt == nil {
		return false
	}
	gap := a.ScheduledAt.Sub(t)
	if gap < 0 {
		gap = -gap
	}
	return gap < ConflictWindow
}

// CreateAppointmentCommand is a booking request. Patient and doctor arrive as
// bare references; the booking engine swaps them for the persisted records.
type CreateAppointmentCommand struct {
	PatientID        *uuid.UUID
	DoctorID         *uuid.UUID
	ScheduledAt      *time.Time
	Reason           string
	Status           Status // empty means "default to SCHEDULED"
	LabTestsRequired string
}

// UpdateAppointmentCommand carries only the fields to change; nil means
// "leave untouched". Supplying a patient or doctor id re-resolves the
// reference against the directory.
type UpdateAppointmentCommand struct {
	ScheduledAt      *time.Time
	Reason           *string
	Status           *Status
	LabTestsRequired *string
	PatientID        *uuid.UUID
	DoctorID         *uuid.UUID
}
