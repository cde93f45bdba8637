// Package logger builds the zap logger shared by the demo's components.
package logger

import (
	"fmt"

	"missile-demo/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger from the logging settings.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "console":
		zapConfig.Encoding = "console"
	case "json":
		zapConfig.Encoding = "json"
		// Colour codes would end up inside the JSON strings.
		zapConfig.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	default:
		return nil, fmt.Errorf("log format %q", cfg.Format)
	}
	// Every tick can log; sampling would hide per-tick ordering.
	zapConfig.Sampling = nil

	logger, err := zapConfig.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
