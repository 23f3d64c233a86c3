// Package errors provides structured error handling with typed categories and context propagation.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error for classification and logging.
type ErrorType string

const (
	// TypeValidation indicates structurally invalid input, such as a malformed override document.
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates a missing resource, such as an absent override file.
	TypeNotFound ErrorType = "not_found"
	// TypeConfiguration indicates a semantically invalid configuration, such as an unknown token category.
	TypeConfiguration ErrorType = "configuration"
	// TypeInternal indicates an unexpected failure inside this process.
	TypeInternal ErrorType = "internal"
	// TypeExternal indicates an upstream service failure.
	TypeExternal ErrorType = "external"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ValidationError creates a new validation error.
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message, Context: make(map[string]any)}
}

// NotFoundError creates a new not-found error.
func NotFoundError(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message, Context: make(map[string]any)}
}

// ConfigurationError creates a new configuration error.
func ConfigurationError(message string) *Error {
	return &Error{Type: TypeConfiguration, Message: message, Context: make(map[string]any)}
}

// InternalError creates a new internal error wrapping its cause.
func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause, Context: make(map[string]any)}
}

// ExternalError creates a new external service error wrapping its cause.
func ExternalError(message string, cause error) *Error {
	return &Error{Type: TypeExternal, Message: message, Cause: cause, Context: make(map[string]any)}
}

// WithContext adds a context field to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause attaches an underlying cause to the error (chainable).
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// IsType reports whether err is a structured error of the given type.
func IsType(err error, t ErrorType) bool {
	var structured *Error
	return errors.As(err, &structured) && structured.Type == t
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return IsType(err, TypeNotFound) }

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return IsType(err, TypeConfiguration) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return IsType(err, TypeValidation) }

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged.
// Otherwise wraps it as an internal error.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}

	return InternalError("internal error", err)
}
