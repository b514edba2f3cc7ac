package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caremesh/hospital-api/internal/service"
	"github.com/caremesh/hospital-api/pkg/metrics"
)

const maxReportSize = 25 << 20 // 25 MiB

type LabReportHandler struct {
	svc       *service.LabReportService
	collector *metrics.Collector
}

func NewLabReportHandler(svc *service.LabReportService, collector *metrics.Collector) *LabReportHandler {
	return &LabReportHandler{svc: svc, collector: collector}
}

func (h *LabReportHandler) Register(r gin.IRouter) {
	reports := r.Group("/lab-reports")
	reports.POST("", h.upload)
	reports.GET("", h.list)
	reports.GET("/:id", h.get)
	reports.GET("/:id/file", h.download)
}

func (h *LabReportHandler) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	if header.Size > maxReportSize {
		respondError(c, http.StatusRequestEntityTooLarge, "report exceeds the 25 MiB limit")
		return
	}

	patientName := c.PostForm("patientName")
	doctorName := c.PostForm("doctorName")
	testName := c.PostForm("testName")
	if patientName == "" || testName == "" {
		respondError(c, http.StatusBadRequest, "patientName and testName are required")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unable to read uploaded file")
		return
	}
	defer file.Close()

	r, err := h.svc.SaveReport(c.Request.Context(), header.Filename, file, patientName, doctorName, testName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.ReportsUploadedTotal.Inc()
	respondCreated(c, r)
}

func (h *LabReportHandler) list(c *gin.Context) {
	ctx := c.Request.Context()

	if name := c.Query("patientName"); name != "" {
		reports, err := h.svc.GetReportsByPatient(ctx, name)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, reports)
		return
	}

	reports, err := h.svc.GetAllReports(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, reports)
}

func (h *LabReportHandler) get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.svc.GetReport(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, r)
}

func (h *LabReportHandler) download(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.svc.GetReport(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	file, err := h.svc.OpenFile(r.FileName)
	if err != nil {
		respondError(c, http.StatusNotFound, "report file is missing from storage")
		return
	}
	defer file.Close()

	c.FileAttachment(file.Name(), r.FileName)
}
