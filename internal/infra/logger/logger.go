package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New monta o logger da aplicação. Em local usa o encoder de console.
func New(env, level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if env == "local" {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err == nil {
			config.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	return config.Build(
		zap.Fields(
			zap.String("service", "inadimplencia-api"),
			zap.String("env", env),
		),
	)
}
