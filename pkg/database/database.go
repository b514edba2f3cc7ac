package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/caremesh/hospital-api/internal/config"
	"github.com/caremesh/hospital-api/internal/domain"
	"github.com/caremesh/hospital-api/internal/domain/appointment"
	"github.com/caremesh/hospital-api/internal/domain/billing"
	"github.com/caremesh/hospital-api/internal/domain/doctor"
	"github.com/caremesh/hospital-api/internal/domain/labreport"
	"github.com/caremesh/hospital-api/internal/domain/patient"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: false,
		DisableAutomaticPing:                     false,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"clinical", "billing", "auth", "audit"} // logical namespaces
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.User{},
		&domain.AuditLog{},
		&doctor.Doctor{},
		&patient.Patient{},
		&appointment.Appointment{},
		&billing.Bill{},
		&labreport.LabReport{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// Availability checks scan one doctor's non-cancelled appointments.
		{
			name:  "idx_appointments_doctor_schedule",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_doctor_schedule ON clinical.appointments (doctor_id, scheduled_at) WHERE status <> 'CANCELLED'`,
		},
		{
			name:  "idx_appointments_patient",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_patient ON clinical.appointments (patient_id, scheduled_at)`,
		},
		{
			name:  "idx_lab_reports_patient_name",
			query: `CREATE INDEX IF NOT EXISTS idx_lab_reports_patient_name ON clinical.lab_reports (patient_name)`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
