package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestInit_PrettyLog tests logger initialization with pretty logging
func TestInit_PrettyLog(t *testing.T) {
	err := Init(true)
	require.NoError(t, err)

	logger := zap.L()
	assert.NotNil(t, logger)
	logger.Info("Test message")
}

// TestInit_JSONLog tests logger initialization with JSON logging
func TestInit_JSONLog(t *testing.T) {
	err := Init(false)
	require.NoError(t, err)

	logger := zap.L()
	assert.NotNil(t, logger)
	logger.Info("Test message")
}

// TestLogDispatch_Success tests logging a successful dispatch
func TestLogDispatch_Success(t *testing.T) {
	observed, logs := observer.New(zap.InfoLevel)
	zap.ReplaceGlobals(zap.New(observed))

	LogDispatch("create_scene", "req-1", 0.05, "")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Dispatch completed", entry.Message)
	assert.Equal(t, "create_scene", entry.ContextMap()["operation"])
	assert.Equal(t, "req-1", entry.ContextMap()["request_id"])
	assert.Equal(t, true, entry.ContextMap()["success"])
}

// TestLogDispatch_Failure tests logging a failed dispatch with its error code
func TestLogDispatch_Failure(t *testing.T) {
	observed, logs := observer.New(zap.WarnLevel)
	zap.ReplaceGlobals(zap.New(observed))

	LogDispatch("get_scene", "req-2", 0.01, "NOT_FOUND")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Dispatch failed", entry.Message)
	assert.Equal(t, zap.WarnLevel, entry.Level)
	assert.Equal(t, "NOT_FOUND", entry.ContextMap()["error_code"])
	assert.Equal(t, false, entry.ContextMap()["success"])
}

// TestLogPanicRecovery tests logging a recovered panic
func TestLogPanicRecovery(t *testing.T) {
	observed, logs := observer.New(zap.ErrorLevel)
	zap.ReplaceGlobals(zap.New(observed))

	LogPanicRecovery("test-component", "test panic")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Panic recovered", entry.Message)
	assert.Equal(t, "test-component", entry.ContextMap()["component"])
	assert.Equal(t, "test panic", entry.ContextMap()["panic_value"])
}

// TestLogDeferredError_WithError tests LogDeferredError when the function errors
func TestLogDeferredError_WithError(t *testing.T) {
	observed, logs := observer.New(zap.ErrorLevel)
	zap.ReplaceGlobals(zap.New(observed))

	LogDeferredError(func() error {
		return errors.New("deferred error")
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Deferred error", entry.Message)
	assert.NotNil(t, entry.ContextMap()["error"])
}

// TestLogDeferredError_NoError tests that success logs nothing
func TestLogDeferredError_NoError(t *testing.T) {
	observed, logs := observer.New(zap.ErrorLevel)
	zap.ReplaceGlobals(zap.New(observed))

	LogDeferredError(func() error { return nil })

	assert.Equal(t, 0, logs.Len())
}
