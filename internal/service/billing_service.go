package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/domain/appointment"
	"github.com/caremesh/hospital-api/internal/domain/billing"
)

type BillingService struct {
	repo            billing.Repository
	appointmentRepo appointment.Repository
	auditSvc        *AuditService
	log             *zap.Logger
}

func NewBillingService(repo billing.Repository, appointmentRepo appointment.Repository, auditSvc *AuditService, log *zap.Logger) *BillingService {
	return &BillingService{repo: repo, appointmentRepo: appointmentRepo, auditSvc: auditSvc, log: log}
}

// CreateBill stores a bill for an appointment. The appointment link is
// resolved tolerantly: a missing or unknown reference leaves the bill
// unlinked instead of failing. Total amount is derived from the fee and
// charge components, each defaulting to zero.
func (s *BillingService) CreateBill(ctx context.Context, cmd *billing.CreateBillCommand) (*billing.Bill, error) {
	b := &billing.Bill{
		ConsultationFee: cmd.ConsultationFee,
		TestCharges:     cmd.TestCharges,
	}

	if cmd.AppointmentID != nil {
		a, err := s.appointmentRepo.GetByID(ctx, *cmd.AppointmentID)
		switch {
		case err == nil:
			b.AppointmentID = &a.ID
			b.Appointment = a
		case errors.Is(err, appointment.ErrAppointmentNotFound):
			// tolerated: bill is stored without an appointment link
		default:
			return nil, fmt.Errorf("resolving appointment: %w", err)
		}
	}

	b.PaymentStatus = cmd.PaymentStatus
	if b.PaymentStatus == "" {
		b.PaymentStatus = billing.PaymentPending
	}

	if cmd.BillDate != nil {
		b.BillDate = appointment.NewDateTime(*cmd.BillDate)
	} else {
		b.BillDate = appointment.NewDateTime(time.Now())
	}

	b.CalculateTotal()

	if err := s.repo.Create(ctx, b); err != nil {
		s.log.Error("failed to create bill", zap.Error(err))
		return nil, fmt.Errorf("creating bill: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "create", "bill", b.ID.String()))

	return b, nil
}

func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BillingService) GetBillByAppointment(ctx context.Context, appointmentID uuid.UUID) (*billing.Bill, error) {
	return s.repo.GetByAppointmentID(ctx, appointmentID)
}

func (s *BillingService) GetAllBills(ctx context.Context) ([]*billing.Bill, error) {
	return s.repo.FindAll(ctx)
}

// UpdateBill merges the supplied fields and recomputes the total whenever a
// fee or charge component is touched.
func (s *BillingService) UpdateBill(ctx context.Context, id uuid.UUID, cmd *billing.UpdateBillCommand) (*billing.Bill, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.ConsultationFee != nil {
		b.ConsultationFee = cmd.ConsultationFee
	}
	if cmd.TestCharges != nil {
		b.TestCharges = cmd.TestCharges
	}
	if cmd.PaymentStatus != nil {
		b.PaymentStatus = *cmd.PaymentStatus
	}

	b.CalculateTotal()

	if err := s.repo.Update(ctx, b); err != nil {
		s.log.Error("failed to update bill", zap.Error(err))
		return nil, fmt.Errorf("updating bill: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "update", "bill", id.String()))

	return b, nil
}

func (s *BillingService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("checking bill existence: %w", err)
	}
	if !exists {
		return billing.ErrBillNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}

	s.auditSvc.LogAsync(ctx, auditEntry(ctx, "delete", "bill", id.String()))

	return nil
}
