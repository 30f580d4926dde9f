package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime Category = "runtime"
	CategoryDOM     Category = "dom"
	CategoryShare   Category = "share"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// ToolboxError is a structured error with a registry code and an optional hint.
type ToolboxError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ToolboxError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ToolboxError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a ToolboxError with the same code.
func (e *ToolboxError) Is(target error) bool {
	t, ok := target.(*ToolboxError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *ToolboxError) WithDetail(d string) *ToolboxError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ToolboxError) WithSuggestion(s string) *ToolboxError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *ToolboxError) Wrap(err error) *ToolboxError {
	e.Wrapped = err
	return e
}

// New creates a ToolboxError from a registered error code.
func New(code string) *ToolboxError {
	template, ok := registry[code]
	if !ok {
		return &ToolboxError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ToolboxError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new ToolboxError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ToolboxError {
	return &ToolboxError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ToolboxError.
func FromError(err error, code string) *ToolboxError {
	if err == nil {
		return nil
	}
	var te *ToolboxError
	if stderrors.As(err, &te) {
		return te
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is (or wraps) a ToolboxError with the given code.
func HasCode(err error, code string) bool {
	var te *ToolboxError
	for err != nil {
		if !stderrors.As(err, &te) {
			return false
		}
		if te.Code == code {
			return true
		}
		err = te.Wrapped
	}
	return false
}
