package patient

import (
	"time"

	"github.com/google/uuid"
)

// Placeholder values used when a patient record is auto-provisioned during
// self-registration, before the front desk fills in the real details.
const (
	PlaceholderGender  = "Other"
	PlaceholderContact = "N/A"
	PlaceholderHistory = "New Patient"
)

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Name           string `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Age            int    `gorm:"column:age" json:"age"`
	Gender         string `gorm:"column:gender;type:varchar(20)" json:"gender"`
	ContactNumber  string `gorm:"column:contact_number;type:varchar(30)" json:"contactNumber"`
	MedicalHistory string `gorm:"column:medical_history;type:text" json:"medicalHistory"`

	// Assigned doctor, if any. Must reference an existing doctor when set.
	AssignedDoctorID *uuid.UUID `gorm:"column:doctor_id;type:uuid;index" json:"doctorId,omitempty"`

	LabTestsRequired string `gorm:"column:lab_tests_required;type:text" json:"labTestsRequired"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

type CreatePatientCommand struct {
	Name             string
	Age              int
	Gender           string
	ContactNumber    string
	MedicalHistory   string
	AssignedDoctorID *uuid.UUID
	LabTestsRequired string
}

type UpdatePatientCommand struct {
	Name             *string
	Age              *int
	Gender           *string
	ContactNumber    *string
	MedicalHistory   *string
	AssignedDoctorID *uuid.UUID
	LabTestsRequired *string
}
