package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application-wide error type. Every failure that crosses a
// layer boundary is either an *AppError or gets wrapped into one at the
// outermost service boundary.
type AppError struct {
	Code     ErrorCode   `json:"error_code"`
	Domain   string      `json:"-"`
	Message  string      `json:"error_message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying cause to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// --- Generic helpers (non-domain) ---

// InternalError wraps an unexpected system error. Internals never leak to the
// client; the cause stays on Err for logging only.
func InternalError(err error) *AppError {
	return Wrap(err, CodeAppError, "system", "Internal server error", http.StatusInternalServerError)
}

// ValidationError builds a 422 with per-field details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationError, "validation", "Validation failed", http.StatusUnprocessableEntity).WithDetails(details)
}

// NewValidationError builds a 422 with a specific message.
func NewValidationError(message string) *AppError {
	return New(CodeValidationError, "validation", message, http.StatusUnprocessableEntity)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeUnapprovedBehavior, "auth", message, http.StatusForbidden)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeDomainError, "request", message, http.StatusBadRequest)
}
