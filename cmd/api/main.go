package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/caremesh/hospital-api/internal/config"
	v1 "github.com/caremesh/hospital-api/internal/handler/v1"
	"github.com/caremesh/hospital-api/internal/repository/postgres"
	"github.com/caremesh/hospital-api/internal/service"
	"github.com/caremesh/hospital-api/pkg/auth"
	"github.com/caremesh/hospital-api/pkg/database"
	"github.com/caremesh/hospital-api/pkg/logger"
	"github.com/caremesh/hospital-api/pkg/metrics"
	"github.com/caremesh/hospital-api/pkg/storage"
	"github.com/caremesh/hospital-api/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log, cfg.App)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting service",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing, cfg.App)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	photoStore, err := storage.New(cfg.Uploads.DoctorsDir)
	if err != nil {
		return err
	}
	reportStore, err := storage.New(cfg.Uploads.Dir)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector("hospital")

	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	billRepo := postgres.NewBillRepository(db)
	labReportRepo := postgres.NewLabReportRepository(db)
	userRepo := postgres.NewUserRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditRepo, collector, log)
	defer auditSvc.Shutdown()

	jwtManager := auth.NewJWTManager(cfg.JWT)

	patientSvc := service.NewPatientService(patientRepo, doctorRepo, auditSvc, log)
	doctorSvc := service.NewDoctorService(doctorRepo, photoStore, auditSvc, log)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, patientRepo, doctorRepo, auditSvc, log)
	billingSvc := service.NewBillingService(billRepo, appointmentRepo, auditSvc, log)
	labReportSvc := service.NewLabReportService(labReportRepo, reportStore, auditSvc, log)
	authSvc := service.NewAuthService(userRepo, patientSvc, patientRepo, doctorRepo, jwtManager, log)

	if err := authSvc.EnsureAdmin(context.Background(),
		cfg.Bootstrap.AdminUsername,
		cfg.Bootstrap.AdminPassword,
		cfg.Bootstrap.AdminEmail,
	); err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}

	router := v1.NewRouter(v1.RouterDeps{
		Config:       cfg,
		Log:          log,
		Collector:    collector,
		JWTManager:   jwtManager,
		Auth:         v1.NewAuthHandler(authSvc),
		Patients:     v1.NewPatientHandler(patientSvc),
		Doctors:      v1.NewDoctorHandler(doctorSvc),
		Appointments: v1.NewAppointmentHandler(appointmentSvc, collector),
		Bills:        v1.NewBillHandler(billingSvc, collector),
		LabReports:   v1.NewLabReportHandler(labReportSvc, collector),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
