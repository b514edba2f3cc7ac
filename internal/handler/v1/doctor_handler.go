package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caremesh/hospital-api/internal/domain/doctor"
	"github.com/caremesh/hospital-api/internal/service"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type DoctorHandler struct {
	svc *service.DoctorService
}

func NewDoctorHandler(svc *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{svc: svc}
}

func (h *DoctorHandler) Register(r gin.IRouter) {
	doctors := r.Group("/doctors")
	doctors.POST("", h.create)
	doctors.GET("", h.list)
	doctors.GET("/:id", h.get)
	doctors.PUT("/:id", h.update)
	doctors.DELETE("/:id", h.delete)
	doctors.POST("/:id/photo", h.uploadPhoto)
	doctors.POST("/:id/certificate", h.uploadCertificate)
}

type createDoctorRequest struct {
	Name            string   `json:"name"`
	Specialization  string   `json:"specialization"`
	Qualification   string   `json:"qualification"`
	Experience      int      `json:"experience"`
	ContactNumber   string   `json:"contactNumber"`
	Email           string   `json:"email"`
	ImageURL        string   `json:"imageUrl"`
	Bio             string   `json:"bio"`
	ConsultationFee *float64 `json:"consultationFee"`
	Status          string   `json:"status"`
	CertificateURL  string   `json:"certificateUrl"`
}

type updateDoctorRequest struct {
	Name            *string  `json:"name"`
	Specialization  *string  `json:"specialization"`
	Qualification   *string  `json:"qualification"`
	Experience      *int     `json:"experience"`
	ContactNumber   *string  `json:"contactNumber"`
	Email           *string  `json:"email"`
	ImageURL        *string  `json:"imageUrl"`
	Bio             *string  `json:"bio"`
	ConsultationFee *float64 `json:"consultationFee"`
	Status          *string  `json:"status"`
	CertificateURL  *string  `json:"certificateUrl"`
}

func (h *DoctorHandler) create(c *gin.Context) {
	var req createDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.CreateDoctor(c.Request.Context(), &doctor.CreateDoctorCommand{
		Name:            req.Name,
		Specialization:  req.Specialization,
		Qualification:   req.Qualification,
		Experience:      req.Experience,
		ContactNumber:   req.ContactNumber,
		Email:           req.Email,
		ImageURL:        req.ImageURL,
		Bio:             req.Bio,
		ConsultationFee: req.ConsultationFee,
		Status:          req.Status,
		CertificateURL:  req.CertificateURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, d)
}

func (h *DoctorHandler) list(c *gin.Context) {
	doctors, err := h.svc.GetAllDoctors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, doctors)
}

func (h *DoctorHandler) get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.svc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DoctorHandler) update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.UpdateDoctor(c.Request.Context(), id, &doctor.UpdateDoctorCommand{
		Name:            req.Name,
		Specialization:  req.Specialization,
		Qualification:   req.Qualification,
		Experience:      req.Experience,
		ContactNumber:   req.ContactNumber,
		Email:           req.Email,
		ImageURL:        req.ImageURL,
		Bio:             req.Bio,
		ConsultationFee: req.ConsultationFee,
		Status:          req.Status,
		CertificateURL:  req.CertificateURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DoctorHandler) uploadPhoto(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	if header.Size > maxPhotoSize {
		respondError(c, http.StatusRequestEntityTooLarge, "photo exceeds the 10 MiB limit")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unable to read uploaded file")
		return
	}
	defer file.Close()

	d, err := h.svc.UploadPhoto(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DoctorHandler) uploadCertificate(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	if header.Size > maxPhotoSize {
		respondError(c, http.StatusRequestEntityTooLarge, "certificate exceeds the 10 MiB limit")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unable to read uploaded file")
		return
	}
	defer file.Close()

	d, err := h.svc.UploadCertificate(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DoctorHandler) delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteDoctor(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
