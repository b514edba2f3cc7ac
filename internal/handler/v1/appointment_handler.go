package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caremesh/hospital-api/internal/domain/appointment"
	"github.com/caremesh/hospital-api/internal/service"
	"github.com/caremesh/hospital-api/pkg/metrics"
)

type AppointmentHandler struct {
	svc       *service.AppointmentService
	collector *metrics.Collector
}

func NewAppointmentHandler(svc *service.AppointmentService, collector *metrics.Collector) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, collector: collector}
}

func (h *AppointmentHandler) Register(r gin.IRouter) {
	appts := r.Group("/appointments")
	appts.POST("", h.create)
	appts.GET("", h.list)
	appts.GET("/:id", h.get)
	appts.PUT("/:id", h.update)
	appts.DELETE("/:id", h.delete)
}

// entityRef is a caller-supplied reference: an id plus whatever other fields
// the client chose to inline. Only the id matters; the booking engine swaps
// the reference for the persisted record.
type entityRef struct {
	ID *uuid.UUID `json:"id"`
}

type appointmentRequest struct {
	Patient          *entityRef            `json:"patient"`
	Doctor           *entityRef            `json:"doctor"`
	AppointmentDate  *appointment.DateTime `json:"appointmentDate"`
	Reason           *string               `json:"reason"`
	Status           *appointment.Status   `json:"status"`
	LabTestsRequired *string               `json:"labTestsRequired"`
}

func (req *appointmentRequest) patientID() *uuid.UUID {
	if req.Patient == nil {
		return nil
	}
	return req.Patient.ID
}

func (req *appointmentRequest) doctorID() *uuid.UUID {
	if req.Doctor == nil {
		return nil
	}
	return req.Doctor.ID
}

func (h *AppointmentHandler) create(c *gin.Context) {
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Status != nil && !req.Status.IsValid() {
		respondError(c, http.StatusBadRequest, "invalid status: must be SCHEDULED, COMPLETED, or CANCELLED")
		return
	}

	cmd := &appointment.CreateAppointmentCommand{
		PatientID: req.patientID(),
		DoctorID:  req.doctorID(),
	}
	if req.AppointmentDate != nil {
		cmd.ScheduledAt = &req.AppointmentDate.Time
	}
	if req.Reason != nil {
		cmd.Reason = *req.Reason
	}
	if req.Status != nil {
		cmd.Status = *req.Status
	}
	if req.LabTestsRequired != nil {
		cmd.LabTestsRequired = *req.LabTestsRequired
	}

	a, err := h.svc.Book(c.Request.Context(), cmd)
	if err != nil {
		if errors.Is(err, appointment.ErrSchedulingConflict) {
			h.collector.BookingConflictsTotal.Inc()
		}
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsBookedTotal.Inc()
	respondCreated(c, a)
}

func (h *AppointmentHandler) list(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("patientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid patientId: must be a valid UUID")
			return
		}
		appts, err := h.svc.GetAppointmentsByPatient(ctx, id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, appts)
		return
	}

	if raw := c.Query("doctorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid doctorId: must be a valid UUID")
			return
		}
		appts, err := h.svc.GetAppointmentsByDoctor(ctx, id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, appts)
		return
	}

	appts, err := h.svc.GetAllAppointments(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appts)
}

func (h *AppointmentHandler) get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Status != nil && !req.Status.IsValid() {
		respondError(c, http.StatusBadRequest, "invalid status: must be SCHEDULED, COMPLETED, or CANCELLED")
		return
	}

	cmd := &appointment.UpdateAppointmentCommand{
		Reason:           req.Reason,
		Status:           req.Status,
		LabTestsRequired: req.LabTestsRequired,
		PatientID:        req.patientID(),
		DoctorID:         req.doctorID(),
	}
	if req.AppointmentDate != nil {
		cmd.ScheduledAt = &req.AppointmentDate.Time
	}

	a, err := h.svc.UpdateAppointment(c.Request.Context(), id, cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteAppointment(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
