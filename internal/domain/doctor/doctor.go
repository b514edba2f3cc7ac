package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor status values. The field is free-form by contract and the store does
// not validate it; these are the two values the admin UI writes.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Name           string `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Specialization string `gorm:"column:specialization;type:varchar(200)" json:"specialization"`
	Qualification  string `gorm:"column:qualification;type:varchar(200)" json:"qualification"`
	Experience     int    `gorm:"column:experience" json:"experience"`
	ContactNumber  string `gorm:"column:contact_number;type:varchar(30)" json:"contactNumber"`
	Email          string `gorm:"column:email;type:varchar(255)" json:"email"`

	ImageURL        string   `gorm:"column:image_url;type:text" json:"imageUrl"`
	Bio             string   `gorm:"column:bio;type:text" json:"bio"`
	ConsultationFee *float64 `gorm:"column:consultation_fee" json:"consultationFee"`
	Status          string   `gorm:"column:status;type:varchar(20)" json:"status"`
	CertificateURL  string   `gorm:"column:certificate_url;type:text" json:"certificateUrl"`
}

func (Doctor) TableName() string {
	return "clinical.doctors"
}

type CreateDoctorCommand struct {
	Name            string
	Specialization  string
	Qualification   string
	Experience      int
	ContactNumber   string
	Email           string
	ImageURL        string
	Bio             string
	ConsultationFee *float64
	Status          string
	CertificateURL  string
}

type UpdateDoctorCommand struct {
	Name            *string
	Specialization  *string
	Qualification   *string
	Experience      *int
	ContactNumber   *string
	Email           *string
	ImageURL        *string
	Bio             *string
	ConsultationFee *float64
	Status          *string
	CertificateURL  *string
}
