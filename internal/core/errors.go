package core

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that the backend reported the requested resource as
// absent. Handlers wrap it so the classifier can detect absence with errors.Is
// regardless of which operation failed.
var ErrNotFound = errors.New("resource not found")

// APIError carries a backend HTTP failure through the handler boundary,
// preserving the original status and message for classification.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spline api error (status %d): %s", e.Status, e.Message)
}

// NewAPIError creates an APIError for the given backend status and message.
func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}
