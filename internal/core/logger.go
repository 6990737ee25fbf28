// Package core implements functionality shared across all gateway components:
// the global logger, the request correlation context and the failure vocabulary
// surfaced by the backend client.
package core

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init initializes zap's global logger
// After calling this, we use zap.L() directly.
func Init(pretty bool) error {
	var config zap.Config

	if pretty {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	zap.ReplaceGlobals(logger)
	return nil
}

// LogDispatch logs one gateway dispatch using zap's global logger
func LogDispatch(operation, requestID string, duration float64, errorCode string) {
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("request_id", requestID),
		zap.Float64("duration_seconds", duration),
		zap.Bool("success", errorCode == ""),
	}

	if errorCode != "" {
		fields = append(fields, zap.String("error_code", errorCode))
		zap.L().Warn("Dispatch failed", fields...)
		return
	}

	zap.L().Info("Dispatch completed", fields...)
}

// LogPanicRecovery logs a recovered panic with its stack trace
func LogPanicRecovery(component string, panicValue any) {
	zap.L().Error("Panic recovered",
		zap.String("component", component),
		zap.Any("panic_value", panicValue),
		zap.String("stack", string(debug.Stack())))
}

// LogDeferredError runs fn and logs any error it returns. Intended for
// deferred cleanup calls whose errors would otherwise be dropped.
func LogDeferredError(fn func() error) {
	if err := fn(); err != nil {
		zap.L().Error("Deferred error",
			zap.Error(err),
			zap.String("stack", string(debug.Stack())))
	}
}
