package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It starts as a no-op logger so packages
// can log before Init runs (tests, tooling).
var Log = zap.NewNop()

// Init builds the logger for the given environment.
// Development: colored console output at debug level.
// Production: JSON at info level.
func Init(isDevelopment bool) error {
	var cfg zap.Config

	if isDevelopment {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	l, err := cfg.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
	if err != nil {
		return err
	}

	Log = l
	return nil
}

// Sync flushes any buffered log entries. Call before the process exits.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
