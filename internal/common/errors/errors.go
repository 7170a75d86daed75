package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode identifies a class of client failure.
type ErrorCode string

const (
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// Pipeline failures. Each is caught at its originating component and
	// reduced to a user-facing state change; they never cross components.
	ErrCodeHashFailed   ErrorCode = "HASH_FAILED"
	ErrCodeVerifyFailed ErrorCode = "VERIFY_FAILED"
	ErrCodeReportFailed ErrorCode = "REPORT_FAILED"
	ErrCodeScanFailed   ErrorCode = "SCAN_FAILED"

	// Input-surface rejections.
	ErrCodeFileRejected ErrorCode = "FILE_REJECTED"

	// Controller gate: a submission arrived while one was in flight.
	ErrCodeBusy ErrorCode = "VERIFICATION_BUSY"

	ErrCodeHistory ErrorCode = "HISTORY_ERROR"
)

// AppError is the typed application error.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail attaches structured context to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with formatting.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Constructors for the failure kinds the pipeline produces.

func NewHashFailed(path string, err error) *AppError {
	return Wrap(err, ErrCodeHashFailed, "could not process file").
		WithDetail("path", path)
}

func NewVerifyFailed(err error) *AppError {
	return Wrap(err, ErrCodeVerifyFailed, "verification request failed")
}

func NewReportFailed(err error) *AppError {
	return Wrap(err, ErrCodeReportFailed, "report submission failed")
}

func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

func NewFileRejected(path, reason string) *AppError {
	return New(ErrCodeFileRejected, fmt.Sprintf("file rejected: %s", reason)).
		WithDetail("path", path).
		WithDetail("reason", reason)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	for errors.As(err, &appErr) {
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
		appErr = nil
	}
	return false
}

// AsAppError casts err to an AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
