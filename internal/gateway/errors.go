package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Tarif-dev/spline-mcp-server/internal/core"
)

// ErrorKind is the closed set of failure classes a call can surface.
type ErrorKind string

const (
	KindValidation       ErrorKind = "VALIDATION"
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindBackendClient    ErrorKind = "BACKEND_CLIENT_ERROR"
	KindBackendServer    ErrorKind = "BACKEND_SERVER_ERROR"
	KindRateLimited      ErrorKind = "RATE_LIMITED"
	KindUnknownOperation ErrorKind = "UNKNOWN_OPERATION"
	KindInternal         ErrorKind = "INTERNAL"
)

// ErrorInfo is the error descriptor carried by a failure envelope.
type ErrorInfo struct {
	Code    ErrorKind `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"status"`
}

// RateLimitError signals that admission control denied the call.
type RateLimitError struct {
	Key string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s", e.Key)
}

// UnknownOperationError signals a lookup miss in the operation registry.
// Suggestion, when non-empty, names the closest registered operation.
type UnknownOperationError struct {
	Name       string
	Suggestion string
}

func (e *UnknownOperationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown operation %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// Classify maps any failure cause to its ErrorInfo. The mapping is total:
// causes matching no specific class fall through to INTERNAL, so Classify
// itself can never fail. Classifying the same cause twice yields identical
// descriptors.
func Classify(cause error) *ErrorInfo {
	var validationErr *ValidationError
	if errors.As(cause, &validationErr) {
		return &ErrorInfo{
			Code:    KindValidation,
			Message: validationErr.Error(),
			Status:  http.StatusBadRequest,
		}
	}

	if errors.Is(cause, core.ErrNotFound) {
		return &ErrorInfo{
			Code:    KindNotFound,
			Message: cause.Error(),
			Status:  http.StatusNotFound,
		}
	}

	var apiErr *core.APIError
	if errors.As(cause, &apiErr) {
		switch {
		case apiErr.Status >= 500 && apiErr.Status < 600:
			return &ErrorInfo{
				Code:    KindBackendServer,
				Message: apiErr.Error(),
				Status:  apiErr.Status,
			}
		case apiErr.Status >= 400 && apiErr.Status < 500:
			return &ErrorInfo{
				Code:    KindBackendClient,
				Message: apiErr.Error(),
				Status:  apiErr.Status,
			}
		}
	}

	var rateLimitErr *RateLimitError
	if errors.As(cause, &rateLimitErr) {
		return &ErrorInfo{
			Code:    KindRateLimited,
			Message: rateLimitErr.Error(),
			Status:  http.StatusTooManyRequests,
		}
	}

	var unknownOpErr *UnknownOperationError
	if errors.As(cause, &unknownOpErr) {
		return &ErrorInfo{
			Code:    KindUnknownOperation,
			Message: unknownOpErr.Error(),
			Status:  http.StatusNotFound,
		}
	}

	// Catch-all: timeouts, transport errors, programming errors.
	return &ErrorInfo{
		Code:    KindInternal,
		Message: cause.Error(),
		Status:  http.StatusInternalServerError,
	}
}
