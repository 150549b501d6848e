// Package errors defines the structured API error responses returned by
// the dashboard's HTTP surface.
package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with an additional details payload.
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined errors for common outcomes.
var (
	ErrInvalidRequest = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrNoUpload       = New(http.StatusBadRequest, "NO_FILES", "No files were uploaded")

	// ErrNoValidData is the terminal "no usable data" outcome: either no
	// uploaded file parsed, or the merged table had zero rows.
	ErrNoValidData = New(http.StatusUnprocessableEntity, "NO_VALID_DATA", "No valid transaction data found in uploaded files")

	// ErrNoSession is returned when statistics are requested before any
	// batch was uploaded in this session.
	ErrNoSession = New(http.StatusConflict, "NO_SESSION_DATA", "No upload batch has been processed yet")

	ErrMerchantNotFound = New(http.StatusNotFound, "MERCHANT_NOT_FOUND", "Merchant not present in the current batch")

	ErrReportFailed       = New(http.StatusInternalServerError, "REPORT_FAILED", "Report generation failed")
	ErrEmailNotConfigured = New(http.StatusServiceUnavailable, "EMAIL_NOT_CONFIGURED", "Email delivery is not configured")
	ErrEmailFailed        = New(http.StatusBadGateway, "EMAIL_FAILED", "Report email could not be delivered")

	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ValidationError describes one failed request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation creates a validation error with field details.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// NoValidDataWithErrors attaches the per-file parse failures to the
// terminal no-data outcome so the operator can see why the batch was empty.
func NoValidDataWithErrors(fileErrors interface{}) *APIError {
	return NewWithDetails(
		http.StatusUnprocessableEntity,
		"NO_VALID_DATA",
		"No valid transaction data found in uploaded files",
		fileErrors,
	)
}

// MerchantNotFoundError names the missing merchant.
func MerchantNotFoundError(merchantID string) *APIError {
	return NewWithDetails(
		http.StatusNotFound,
		"MERCHANT_NOT_FOUND",
		fmt.Sprintf("Merchant %q not present in the current batch", merchantID),
		merchantID,
	)
}

// ErrPanic wraps a recovered panic value.
func ErrPanic(rec interface{}) *APIError {
	return NewWithDetails(
		http.StatusInternalServerError,
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		fmt.Sprintf("%v", rec),
	)
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// NewErrorResponse wraps an APIError in the standard envelope.
func NewErrorResponse(err *APIError) *ErrorResponse {
	return &ErrorResponse{Success: false, Error: err}
}

// Render implements render.Renderer.
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.Error.Render(w, r)
}
