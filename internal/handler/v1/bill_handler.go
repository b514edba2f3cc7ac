package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caremesh/hospital-api/internal/domain/appointment"
	"github.com/caremesh/hospital-api/internal/domain/billing"
	"github.com/caremesh/hospital-api/internal/service"
	"github.com/caremesh/hospital-api/pkg/metrics"
)

type BillHandler struct {
	svc       *service.BillingService
	collector *metrics.Collector
}

func NewBillHandler(svc *service.BillingService, collector *metrics.Collector) *BillHandler {
	return &BillHandler{svc: svc, collector: collector}
}

func (h *BillHandler) Register(r gin.IRouter) {
	bills := r.Group("/bills")
	bills.POST("", h.create)
	bills.GET("", h.list)
	bills.GET("/:id", h.get)
	bills.GET("/appointment/:appointmentId", h.getByAppointment)
	bills.PUT("/:id", h.update)
	bills.DELETE("/:id", h.delete)
}

type createBillRequest struct {
	Appointment     *entityRef            `json:"appointment"`
	ConsultationFee *float64              `json:"consultationFee"`
	TestCharges     *float64              `json:"testCharges"`
	PaymentStatus   billing.PaymentStatus `json:"paymentStatus"`
	BillDate        *appointment.DateTime `json:"billDate"`
}

type updateBillRequest struct {
	ConsultationFee *float64               `json:"consultationFee"`
	TestCharges     *float64               `json:"testCharges"`
	PaymentStatus   *billing.PaymentStatus `json:"paymentStatus"`
}

func (h *BillHandler) create(c *gin.Context) {
	var req createBillRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.PaymentStatus != "" && !req.PaymentStatus.IsValid() {
		respondError(c, http.StatusBadRequest, "invalid paymentStatus: must be PENDING, PAID, or CANCELLED")
		return
	}

	cmd := &billing.CreateBillCommand{
		ConsultationFee: req.ConsultationFee,
		TestCharges:     req.TestCharges,
		PaymentStatus:   req.PaymentStatus,
	}
	if req.Appointment != nil {
		cmd.AppointmentID = req.Appointment.ID
	}
	if req.BillDate != nil {
		t := req.BillDate.Time
		cmd.BillDate = &t
	}

	b, err := h.svc.CreateBill(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.BillsCreatedTotal.Inc()
	respondCreated(c, b)
}

func (h *BillHandler) list(c *gin.Context) {
	bills, err := h.svc.GetAllBills(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, bills)
}

func (h *BillHandler) get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.svc.GetBill(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, b)
}

func (h *BillHandler) getByAppointment(c *gin.Context) {
	raw := c.Param("appointmentId")
	appointmentID, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid appointmentId: must be a valid UUID")
		return
	}

	b, err := h.svc.GetBillByAppointment(c.Request.Context(), appointmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, b)
}

func (h *BillHandler) update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateBillRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.PaymentStatus != nil && !req.PaymentStatus.IsValid() {
		respondError(c, http.StatusBadRequest, "invalid paymentStatus: must be PENDING, PAID, or CANCELLED")
		return
	}

	b, err := h.svc.UpdateBill(c.Request.Context(), id, &billing.UpdateBillCommand{
		ConsultationFee: req.ConsultationFee,
		TestCharges:     req.TestCharges,
		PaymentStatus:   req.PaymentStatus,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, b)
}

func (h *BillHandler) delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteBill(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
