package labreport

import (
	"time"

	"github.com/google/uuid"
)

// LabReport is the record of an uploaded result document. Patient and doctor
// are captured by display name at upload time; the file itself lives in the
// upload store under FileName.
type LabReport struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	PatientName string    `gorm:"column:patient_name;type:varchar(200);index" json:"patientName"`
	DoctorName  string    `gorm:"column:doctor_name;type:varchar(200)" json:"doctorName"`
	TestName    string    `gorm:"column:test_name;type:varchar(200)" json:"testName"`
	ReportDate  time.Time `gorm:"column:report_date;type:date" json:"reportDate"`

	FilePath string `gorm:"column:file_path;type:text" json:"filePath"`
	FileName string `gorm:"column:file_name;type:text" json:"fileName"`
}

func (LabReport) TableName() string {
	return "clinical.lab_reports"
}
