package models

import (
	"errors"
	"fmt"
)

// ErrorCode represents a code-server error code.
type ErrorCode string

// Error codes for argument and configuration resolution.
const (
	// Parse errors
	ErrUnknownOption     ErrorCode = "E_UNKNOWN_OPTION"
	ErrRestrictedOption  ErrorCode = "E_RESTRICTED_OPTION"
	ErrMissingValue      ErrorCode = "E_MISSING_VALUE"
	ErrInvalidNumber     ErrorCode = "E_INVALID_NUMBER"
	ErrInvalidEnumValue  ErrorCode = "E_INVALID_ENUM_VALUE"
	ErrInvalidBindAddr   ErrorCode = "E_INVALID_BIND_ADDR"

	// Configuration errors
	ErrConfigInvalid   ErrorCode = "E_CONFIG_INVALID"
	ErrConfigWriteFail ErrorCode = "E_CONFIG_WRITE_FAIL"

	// Instance errors
	ErrInstanceUnavailable ErrorCode = "E_INSTANCE_UNAVAILABLE"
)

// CodeServerError represents a structured error with code and context.
type CodeServerError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface.
func (e *CodeServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *CodeServerError) Unwrap() error {
	return e.Cause
}

// NewError creates a new CodeServerError.
func NewError(code ErrorCode, message string) *CodeServerError {
	return &CodeServerError{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new CodeServerError with a formatted message.
func Errorf(code ErrorCode, format string, args ...interface{}) *CodeServerError {
	return NewError(code, fmt.Sprintf(format, args...))
}

// WithDetails adds details to the error.
func (e *CodeServerError) WithDetails(key string, value interface{}) *CodeServerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause adds a cause to the error.
func (e *CodeServerError) WithCause(cause error) *CodeServerError {
	e.Cause = cause
	return e
}

// Wrap wraps an error with a CodeServerError.
func Wrap(code ErrorCode, message string, cause error) *CodeServerError {
	return &CodeServerError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether any error in err's chain is a CodeServerError with
// the given code.
func IsCode(err error, code ErrorCode) bool {
	var cse *CodeServerError
	if !errors.As(err, &cse) {
		return false
	}
	return cse.Code == code
}
