package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Messages returns the field messages in order, or the main message when there are none.
func (e *AppError) Messages() []string {
	if len(e.Errors) == 0 {
		return []string{e.Message}
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}

// EmptySubmissionMessage is returned when no line item carries any data.
const EmptySubmissionMessage = "No data entered. Please fill at least one line item before generating the invoice."

// Common errors
var (
	ErrNotFound            = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized        = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrBadRequest          = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer      = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict            = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable       = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
	ErrTooManyRequests     = &AppError{Code: http.StatusTooManyRequests, Message: "Too many requests"}
	ErrTokenExpired        = &AppError{Code: http.StatusUnauthorized, Message: "Session token has expired"}
	ErrInvalidToken        = &AppError{Code: http.StatusUnauthorized, Message: "Invalid session token"}
	ErrInvalidCredentials  = &AppError{Code: http.StatusUnauthorized, Message: "Invalid archive key"}
	ErrInvalidArchiveToken = &AppError{Code: http.StatusUnauthorized, Message: "Invalid archive token"}
	ErrSessionExpired      = &AppError{Code: http.StatusNotFound, Message: "Session not found or expired. Start a new invoice."}
	ErrEmptySubmission     = &AppError{Code: http.StatusUnprocessableEntity, Message: EmptySubmissionMessage}
	ErrSerializationFail   = &AppError{Code: http.StatusInternalServerError, Message: "Unexpected error during invoice generation: the document could not be written"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewRowValidationError reports rejected form input. The message lists every
// field message, one per line, in the order given.
func NewRowValidationError(fieldErrors []FieldError) *AppError {
	msgs := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		msgs = append(msgs, fe.Message)
	}
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: strings.Join(msgs, "\n"),
		Errors:  fieldErrors,
	}
}

// NewTooManyItemsError rejects an invoice with more line items than the template has rows.
func NewTooManyItemsError(capacity int) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: fmt.Sprintf("Too many line items: the invoice template holds at most %d rows.", capacity),
	}
}

// NewTemplateIntegrityError reports a template that lacks a required region.
func NewTemplateIntegrityError(detail string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "Unexpected error during invoice generation: " + detail,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
