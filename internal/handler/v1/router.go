package v1

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/config"
	"github.com/caremesh/hospital-api/internal/middleware"
	"github.com/caremesh/hospital-api/pkg/auth"
	"github.com/caremesh/hospital-api/pkg/metrics"
)

type RouterDeps struct {
	Config     *config.Config
	Log        *zap.Logger
	Collector  *metrics.Collector
	JWTManager *auth.JWTManager

	Auth         *AuthHandler
	Patients     *PatientHandler
	Doctors      *DoctorHandler
	Appointments *AppointmentHandler
	Bills        *BillHandler
	LabReports   *LabReportHandler
}

// NewRouter assembles the HTTP surface: liveness and metrics endpoints stay
// open, /api/v1/auth handles login and registration, and everything else
// requires a bearer token.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.Metrics(deps.Collector))
	if deps.Config.Tracing.Enabled {
		r.Use(middleware.Tracing(deps.Config.Tracing.ServiceName))
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  deps.Config.CORS.AllowedOrigins,
		AllowMethods:  deps.Config.CORS.AllowedMethods,
		AllowHeaders:  deps.Config.CORS.AllowedHeaders,
		MaxAge:        deps.Config.CORS.MaxAge,
		ExposeHeaders: []string{"Content-Disposition"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Config.App.Name,
			"version": deps.Config.App.Version,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	r.Static("/uploads", deps.Config.Uploads.Dir)

	api := r.Group("/api/v1")
	deps.Auth.RegisterPublic(api)

	protected := api.Group("")
	protected.Use(middleware.Authenticate(deps.JWTManager))
	deps.Auth.RegisterProtected(protected)
	deps.Patients.Register(protected)
	deps.Doctors.Register(protected)
	deps.Appointments.Register(protected)
	deps.Bills.Register(protected)
	deps.LabReports.Register(protected)

	return r
}
