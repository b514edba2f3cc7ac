package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/caremesh/hospital-api/internal/domain/appointment"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

// Bill invoices a single appointment. The appointment link is tolerant: a
// bill whose appointment reference does not resolve is stored without one
// rather than rejected.
type Bill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	AppointmentID *uuid.UUID               `gorm:"column:appointment_id;type:uuid;uniqueIndex" json:"-"`
	Appointment   *appointment.Appointment `gorm:"foreignKey:AppointmentID" json:"appointment"`

	ConsultationFee *float64 `gorm:"column:consultation_fee" json:"consultationFee"`
	TestCharges     *float64 `gorm:"column:test_charges" json:"testCharges"`
	TotalAmount     float64  `gorm:"column:total_amount;not null" json:"totalAmount"`

	PaymentStatus PaymentStatus         `gorm:"column:payment_status;type:varchar(20);not null;default:'PENDING'" json:"paymentStatus"`
	BillDate      *appointment.DateTime `gorm:"column:bill_date;type:timestamp" json:"billDate"`
}

func (Bill) TableName() string {
	return "billing.bills"
}

// CalculateTotal derives the total amount, treating a missing fee or charge
// component as zero. Runs on every create and on every update that touches
// either component.
func (b *Bill) CalculateTotal() {
	var total float64
	if b.ConsultationFee != nil {
		total += *b.ConsultationFee
	}
	if b.TestCharges != nil {
		total += *b.TestCharges
	}
	b.TotalAmount = total
}

type CreateBillCommand struct {
	AppointmentID   *uuid.UUID
	ConsultationFee *float64
	TestCharges     *float64
	PaymentStatus   PaymentStatus // empty means "default to PENDING"
	BillDate        *time.Time    // nil means "default to now"
}

type UpdateBillCommand struct {
	ConsultationFee *float64
	TestCharges     *float64
	PaymentStatus   *PaymentStatus
}
