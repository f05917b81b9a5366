// Package errors provides the structured error type used by the document
// store, the builder and the CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes.
const (
	ErrCodeDuplicateKey    = "ERR_DUPLICATE_KEY"
	ErrCodeEmptyKey        = "ERR_EMPTY_KEY"
	ErrCodeNilValue        = "ERR_NIL_VALUE"
	ErrCodeBuilderSealed   = "ERR_BUILDER_SEALED"
	ErrCodeKeyMismatch     = "ERR_KEY_MISMATCH"
	ErrCodeOutOfBounds     = "ERR_OUT_OF_BOUNDS"
	ErrCodeReadFailed      = "ERR_READ_FAILED"
	ErrCodeWriteFailed     = "ERR_WRITE_FAILED"
	ErrCodeInvalidDocument = "ERR_INVALID_DOCUMENT"
	ErrCodeUnknownKey      = "ERR_UNKNOWN_KEY"
	ErrCodeWatchFailed     = "ERR_WATCH_FAILED"
	ErrCodeInvalidOption   = "ERR_INVALID_OPTION"
	ErrCodeInternalError   = "ERR_INTERNAL"
)

// ConfigError is a structured error type with context.
type ConfigError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Key     string
	Path    string
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	if e.Key != "" {
		parts = append(parts, "key:"+e.Key)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is matches another ConfigError with the same type and code.
func (e *ConfigError) Is(target error) bool {
	var t *ConfigError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ConfigError) WithContext(key string, value interface{}) *ConfigError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithKey records the entry key the error is about.
func (e *ConfigError) WithKey(key string) *ConfigError {
	e.Key = key

	return e
}

// WithPath records the document path the error is about.
func (e *ConfigError) WithPath(path string) *ConfigError {
	e.Path = path

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ConfigError {
	return &ConfigError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration definition error.
func NewConfigError(code, message string) *ConfigError {
	return &ConfigError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func isType(err error, t ErrorType) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Type == t
	}

	return false
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsIOError checks if an error is I/O related.
func IsIOError(err error) bool {
	return isType(err, ErrorTypeIO)
}

// IsConfigError checks if an error is a configuration definition error.
func IsConfigError(err error) bool {
	return isType(err, ErrorTypeConfig)
}

// HasCode checks if any error in the tree carries code. Joined errors are
// searched too.
func HasCode(err error, code string) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *ConfigError:
		if e.Code == code {
			return true
		}
		return HasCode(e.Cause, code)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if HasCode(inner, code) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return HasCode(e.Unwrap(), code)
	}

	return false
}
