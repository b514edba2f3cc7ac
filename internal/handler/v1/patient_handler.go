package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caremesh/hospital-api/internal/domain/patient"
	"github.com/caremesh/hospital-api/internal/service"
)

type PatientHandler struct {
	svc *service.PatientService
}

func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func (h *PatientHandler) Register(r gin.IRouter) {
	patients := r.Group("/patients")
	patients.POST("", h.create)
	patients.GET("", h.list)
	patients.GET("/:id", h.get)
	patients.PUT("/:id", h.update)
	patients.DELETE("/:id", h.delete)
}

type createPatientRequest struct {
	Name             string     `json:"name"`
	Age              int        `json:"age"`
	Gender           string     `json:"gender"`
	ContactNumber    string     `json:"contactNumber"`
	MedicalHistory   string     `json:"medicalHistory"`
	DoctorID         *uuid.UUID `json:"doctorId"`
	LabTestsRequired string     `json:"labTestsRequired"`
}

type updatePatientRequest struct {
	Name             *string    `json:"name"`
	Age              *int       `json:"age"`
	Gender           *string    `json:"gender"`
	ContactNumber    *string    `json:"contactNumber"`
	MedicalHistory   *string    `json:"medicalHistory"`
	DoctorID         *uuid.UUID `json:"doctorId"`
	LabTestsRequired *string    `json:"labTestsRequired"`
}

func (h *PatientHandler) create(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.CreatePatient(c.Request.Context(), &patient.CreatePatientCommand{
		Name:             req.Name,
		Age:              req.Age,
		Gender:           req.Gender,
		ContactNumber:    req.ContactNumber,
		MedicalHistory:   req.MedicalHistory,
		AssignedDoctorID: req.DoctorID,
		LabTestsRequired: req.LabTestsRequired,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

func (h *PatientHandler) list(c *gin.Context) {
	patients, err := h.svc.GetAllPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, patients)
}

func (h *PatientHandler) get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.UpdatePatient(c.Request.Context(), id, &patient.UpdatePatientCommand{
		Name:             req.Name,
		Age:              req.Age,
		Gender:           req.Gender,
		ContactNumber:    req.ContactNumber,
		MedicalHistory:   req.MedicalHistory,
		AssignedDoctorID: req.DoctorID,
		LabTestsRequired: req.LabTestsRequired,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePatient(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
