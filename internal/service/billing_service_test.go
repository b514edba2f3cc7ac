package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/domain/appointment"
	"github.com/caremesh/hospital-api/internal/domain/billing"
)

func fee(v float64) *float64 { return &v }

type billingFixture struct {
	svc         *BillingService
	repo        *fakeBillRepo
	apptRepo    *fakeAppointmentRepo
	appointment *appointment.Appointment
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()

	repo := newFakeBillRepo()
	apptRepo := newFakeAppointmentRepo()

	a := &appointment.Appointment{Reason: "checkup", Status: appointment.StatusScheduled}
	if err := apptRepo.Insert(context.Background(), a); err != nil {
		t.Fatal(err)
	}

	svc := NewBillingService(repo, apptRepo, newTestAuditService(), zap.NewNop())
	return &billingFixture{svc: svc, repo: repo, apptRepo: apptRepo, appointment: a}
}

func TestCreateBillComputesTotalAndDefaults(t *testing.T) {
	f := newBillingFixture(t)

	b, err := f.svc.CreateBill(context.Background(), &billing.CreateBillCommand{
		AppointmentID:   &f.appointment.ID,
		ConsultationFee: fee(30),
		TestCharges:     fee(20),
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	if b.TotalAmount != 50 {
		t.Errorf("TotalAmount = %v, want 50", b.TotalAmount)
	}
	if b.PaymentStatus != billing.PaymentPending {
		t.Errorf("PaymentStatus = %s, want PENDING", b.PaymentStatus)
	}
	if b.BillDate == nil {
		t.Error("BillDate must default to now")
	}
	if b.AppointmentID == nil || *b.AppointmentID != f.appointment.ID {
		t.Error("bill must link to the resolved appointment")
	}
}

func TestCreateBillToleratesUnknownAppointment(t *testing.T) {
	f := newBillingFixture(t)

	unknown := uuid.New()
	b, err := f.svc.CreateBill(context.Background(), &billing.CreateBillCommand{
		AppointmentID:   &unknown,
		ConsultationFee: fee(30),
	})
	if err != nil {
		t.Fatalf("CreateBill with unknown appointment: %v", err)
	}
	if b.AppointmentID != nil {
		t.Error("unresolvable appointment reference must leave the bill unlinked")
	}
	if b.TotalAmount != 30 {
		t.Errorf("TotalAmount = %v, want 30", b.TotalAmount)
	}
}

func TestCreateBillWithoutAppointment(t *testing.T) {
	f := newBillingFixture(t)

	b, err := f.svc.CreateBill(context.Background(), &billing.CreateBillCommand{})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if b.AppointmentID != nil {
		t.Error("bill without an appointment reference must stay unlinked")
	}
	if b.TotalAmount != 0 {
		t.Errorf("TotalAmount = %v, want 0", b.TotalAmount)
	}
}

func TestCreateBillKeepsSuppliedDate(t *testing.T) {
	f := newBillingFixture(t)

	when := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	b, err := f.svc.CreateBill(context.Background(), &billing.CreateBillCommand{
		BillDate: &when,
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.BillDate == nil || !b.BillDate.Equal(when) {
		t.Error("supplied bill date must be kept")
	}
}

func TestUpdateBillRecomputesTotal(t *testing.T) {
	f := newBillingFixture(t)

	b, err := f.svc.CreateBill(context.Background(), &billing.CreateBillCommand{
		ConsultationFee: fee(30),
		TestCharges:     fee(20),
	})
	if err != nil {
		t.Fatal(err)
	}

	paid := billing.PaymentPaid
	updated, err := f.svc.UpdateBill(context.Background(), b.ID, &billing.UpdateBillCommand{
		TestCharges:   fee(45),
		PaymentStatus: &paid,
	})
	if err != nil {
		t.Fatalf("UpdateBill: %v", err)
	}

	if updated.TotalAmount != 75 {
		t.Errorf("TotalAmount = %v, want 75", updated.TotalAmount)
	}
	if updated.PaymentStatus != billing.PaymentPaid {
		t.Errorf("PaymentStatus = %s, want PAID", updated.PaymentStatus)
	}
	if updated.ConsultationFee == nil || *updated.ConsultationFee != 30 {
		t.Error("untouched fee component must survive the merge")
	}
}

func TestGetBillByAppointment(t *testing.T) {
	f := newBillingFixture(t)

	if _, err := f.svc.CreateBill(context.Background(), &billing.CreateBillCommand{
		AppointmentID:   &f.appointment.ID,
		ConsultationFee: fee(30),
	}); err != nil {
		t.Fatal(err)
	}

	b, err := f.svc.GetBillByAppointment(context.Background(), f.appointment.ID)
	if err != nil {
		t.Fatalf("GetBillByAppointment: %v", err)
	}
	if b.AppointmentID == nil || *b.AppointmentID != f.appointment.ID {
		t.Error("wrong bill returned")
	}

	if _, err := f.svc.GetBillByAppointment(context.Background(), uuid.New()); !errors.Is(err, billing.ErrBillNotFound) {
		t.Fatalf("expected bill not found, got %v", err)
	}
}

func TestDeleteBill(t *testing.T) {
	f := newBillingFixture(t)

	b, err := f.svc.CreateBill(context.Background(), &billing.CreateBillCommand{})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.svc.DeleteBill(context.Background(), b.ID); err != nil {
		t.Fatalf("DeleteBill: %v", err)
	}
	if err := f.svc.DeleteBill(context.Background(), b.ID); !errors.Is(err, billing.ErrBillNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
}
