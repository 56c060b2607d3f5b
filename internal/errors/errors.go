// Package errors provides error handling for the Alita proxy.
package errors

import (
	"errors"
	"strings"
	"time"
)

// ============================================================
// Error Categories
// ============================================================

// Category defines the type of error for handling decisions.
type Category int

const (
	// CategoryTemporary errors are retryable (network timeouts, transient
	// provider failures)
	CategoryTemporary Category = iota

	// CategoryPermanent errors are not retryable (upstream rejected the
	// request, unsupported format)
	CategoryPermanent

	// CategoryUser errors are due to caller input (missing argument,
	// unknown tool name); the HTTP surface maps these to 400
	CategoryUser

	// CategoryConfig errors are missing or invalid configuration
	// (absent credential); fail fast, never attempt an outbound call
	CategoryConfig
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTemporary:
		return "temporary"
	case CategoryPermanent:
		return "permanent"
	case CategoryUser:
		return "user"
	case CategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ============================================================
// AppError - Main Error Type
// ============================================================

// AppError is the main error type for proxy errors.
type AppError struct {
	// Code is a unique error code for programmatic handling
	Code string

	// Message is a user-friendly error message
	Message string

	// Category determines how the error should be handled
	Category Category

	// Inner is the underlying error
	Inner error

	// Retryable indicates if the operation can be retried
	Retryable bool

	// RetryAfter is the suggested delay before retry
	RetryAfter time.Duration
}

// Error returns the error message.
func (e *AppError) Error() string {
	var sb strings.Builder

	if e.Code != "" {
		sb.WriteString("[")
		sb.WriteString(e.Code)
		sb.WriteString("] ")
	}

	sb.WriteString(e.Message)

	if e.Inner != nil {
		innerMsg := e.Inner.Error()
		if innerMsg != "" && innerMsg != e.Message {
			sb.WriteString(": ")
			sb.WriteString(innerMsg)
		}
	}

	return sb.String()
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Inner
}

// Is checks if the target error is contained in this error.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Inner, target)
}

// ============================================================
// Error Constructors
// ============================================================

// New creates a new AppError.
func New(code, message string, category Category) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Category: category,
	}
}

// Wrap wraps an existing error with context.
func Wrap(err error, code, message string, category Category) *AppError {
	if err == nil {
		return nil
	}

	// If it's already an AppError, keep its retry semantics
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:      code,
			Message:   message,
			Category:  category,
			Inner:     appErr,
			Retryable: appErr.Retryable,
		}
	}

	// Raw errors carry no retry semantics; derive them from the category
	return &AppError{
		Code:      code,
		Message:   message,
		Category:  category,
		Inner:     err,
		Retryable: category == CategoryTemporary,
	}
}

// Temporary creates a retryable temporary error.
func Temporary(code, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Category:  CategoryTemporary,
		Retryable: true,
	}
}

// Permanent creates a non-retryable permanent error.
func Permanent(code, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Category:  CategoryPermanent,
		Retryable: false,
	}
}

// User creates a caller input error.
func User(code, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Category:  CategoryUser,
		Retryable: false,
	}
}

// Config creates a configuration error.
func Config(code, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Category:  CategoryConfig,
		Retryable: false,
	}
}

// ============================================================
// Error Codes
// ============================================================

const (
	// Config errors
	CodeConfigMissingKey = "CONFIG_MISSING_KEY"
	CodeConfigInvalid    = "CONFIG_INVALID"

	// Tool errors
	CodeToolNotFound      = "TOOL_NOT_FOUND"
	CodeToolInvalidParams = "TOOL_INVALID_PARAMS"

	// Upstream provider errors
	CodeUpstreamStatus      = "UPSTREAM_STATUS"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamEmpty       = "UPSTREAM_EMPTY"

	// Export errors
	CodeExportUnsupported = "EXPORT_UNSUPPORTED_FORMAT"
	CodeExportWriteFailed = "EXPORT_WRITE_FAILED"
)

// ============================================================
// Helpers
// ============================================================

// GetCategory extracts the category from an error.
// Returns CategoryTemporary for non-AppError errors.
func GetCategory(err error) Category {
	if err == nil {
		return CategoryTemporary
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Category
	}

	// Default to temporary for unknown errors (safe default)
	return CategoryTemporary
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable
	}

	// Default to retryable for unknown errors
	return true
}

// IsUser reports whether the error is a caller input error.
func IsUser(err error) bool {
	return err != nil && GetCategory(err) == CategoryUser
}
