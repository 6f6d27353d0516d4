package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// StoreErrorType categorizes different kinds of task store failures
type StoreErrorType string

const (
	ValidationError StoreErrorType = "validation"
	NotFoundError   StoreErrorType = "not_found"
	CorruptError    StoreErrorType = "corrupt"
	GatewayError    StoreErrorType = "gateway"
	InternalError   StoreErrorType = "internal"
)

// StoreError provides structured error information with HTTP status suggestions
type StoreError struct {
	Type    StoreErrorType `json:"type"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Constructor functions for common error types
func NewValidationError(message string, details ...map[string]any) *StoreError {
	var d map[string]any
	if len(details) > 0 {
		d = details[0]
	}
	return &StoreError{
		Type:    ValidationError,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: d,
	}
}

func NewNotFoundError(message string) *StoreError {
	return &StoreError{
		Type:    NotFoundError,
		Message: message,
		Code:    http.StatusNotFound,
	}
}

// NewCorruptError marks a persisted task blob that cannot be decoded.
// Distinct from GatewayError so a startup failure can be told apart
// from a backend outage.
func NewCorruptError(message string, details ...map[string]any) *StoreError {
	var d map[string]any
	if len(details) > 0 {
		d = details[0]
	}
	return &StoreError{
		Type:    CorruptError,
		Message: message,
		Code:    http.StatusInternalServerError,
		Details: d,
	}
}

func NewGatewayError(message string, details ...map[string]any) *StoreError {
	var d map[string]any
	if len(details) > 0 {
		d = details[0]
	}
	return &StoreError{
		Type:    GatewayError,
		Message: message,
		Code:    http.StatusBadGateway,
		Details: d,
	}
}

func NewInternalError(message string) *StoreError {
	return &StoreError{
		Type:    InternalError,
		Message: message,
		Code:    http.StatusInternalServerError,
	}
}

// IsStoreError checks if an error is a StoreError, unwrapping as needed.
func IsStoreError(err error) (*StoreError, bool) {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr, true
	}
	return nil, false
}
