package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryPattern  Category = "pattern"
	CategoryRouting  Category = "routing"
	CategoryProtocol Category = "protocol"
	CategoryBridge   Category = "bridge"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// RoutifyError is a structured error with a stable code, a fix suggestion,
// and a documentation link.
type RoutifyError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (pattern, routing, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RoutifyError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RoutifyError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RoutifyError) WithSuggestion(s string) *RoutifyError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RoutifyError) WithDetail(d string) *RoutifyError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation to the error.
func (e *RoutifyError) WithDetailf(format string, args ...any) *RoutifyError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *RoutifyError) Wrap(err error) *RoutifyError {
	e.Wrapped = err
	return e
}

// New creates a RoutifyError from a registered error code.
func New(code string) *RoutifyError {
	template, ok := registry[code]
	if !ok {
		return &RoutifyError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RoutifyError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new RoutifyError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RoutifyError {
	return &RoutifyError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RoutifyError.
func FromError(err error, code string) *RoutifyError {
	if err == nil {
		return nil
	}
	e := New(code)
	e.Wrapped = err
	return e
}
