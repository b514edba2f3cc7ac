package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/caremesh/hospital-api/internal/config"
)

// New builds the process-wide logger. Every line carries the service name and
// environment so aggregated logs from several deployments stay separable.
func New(cfg config.LogConfig, app config.AppConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{cfg.OutputPath}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.InitialFields = map[string]any{
		"service": app.Name,
		"env":     app.Environment,
	}

	logger, err := zapCfg.Build(
		zap.WithCaller(true),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return logger, nil
}
