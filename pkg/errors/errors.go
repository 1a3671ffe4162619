// Package errors provides the roster engine's unified error framework.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies the category of an AppError.
type Code string

const (
	// General
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Configuration
	CodeConfigNotFound Code = "CONFIG_NOT_FOUND"
	CodeConfigInvalid  Code = "CONFIG_INVALID"

	// Unavailability ingestion
	CodeUnavailabilityFile Code = "UNAVAILABILITY_FILE_ERROR"

	// Model build
	CodeConstraintSkipped Code = "CONSTRAINT_SKIPPED"
	CodeUnknownShift      Code = "UNKNOWN_SHIFT"
	CodeUnknownEmployee   Code = "UNKNOWN_EMPLOYEE"

	// Solver outcomes
	CodeInfeasible    Code = "INFEASIBLE"
	CodeSolverUnknown Code = "SOLVER_UNKNOWN"
	CodeModelInvalid  Code = "MODEL_INVALID"

	// Report
	CodeReportWriteFailed Code = "REPORT_WRITE_FAILED"
)

// AppError is the application's structured error type.
type AppError struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches a human-readable detail string.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithField attaches a structured field.
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New creates a new AppError.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error in an AppError.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the code carried by err, or CodeUnknown.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// Predefined errors for common outcomes.
var (
	ErrConfigNotFound = New(CodeConfigNotFound, "configuration file not found")
	ErrConfigInvalid  = New(CodeConfigInvalid, "configuration is invalid")
	ErrInfeasible     = New(CodeInfeasible, "no feasible roster exists for the given inputs")
)

// ConfigError creates a fatal configuration error.
func ConfigError(reason string, cause error) *AppError {
	return Wrap(cause, CodeConfigInvalid, reason)
}

// UnavailabilityError creates a non-fatal unavailability-ingestion error.
func UnavailabilityError(reason string, cause error) *AppError {
	return Wrap(cause, CodeUnavailabilityFile, reason)
}

// ConstraintSkipped creates a non-fatal model-build error for a malformed
// constraint row.
func ConstraintSkipped(kind, reason string) *AppError {
	return New(CodeConstraintSkipped, fmt.Sprintf("constraint %q skipped: %s", kind, reason))
}

// SolverOutcome creates an error describing a non-actionable solver status.
func SolverOutcome(status string) *AppError {
	if status == "INFEASIBLE" {
		return New(CodeInfeasible, "solver reported INFEASIBLE")
	}
	return New(CodeSolverUnknown, fmt.Sprintf("solver reported %s", status))
}

// ValidationErrors collects multiple field-level validation failures.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// ValidationError is a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s - %s", ve.Errors[0].Field, ve.Errors[0].Message)
}

// Add appends a field-level validation failure.
func (ve *ValidationErrors) Add(field, message string) {
	ve.Errors = append(ve.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any validation failures were recorded.
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToAppError converts the collected validation errors into a single AppError.
func (ve *ValidationErrors) ToAppError() *AppError {
	err := New(CodeConfigInvalid, "configuration validation failed")
	err.Fields = make(map[string]interface{})
	for _, e := range ve.Errors {
		err.Fields[e.Field] = e.Message
	}
	return err
}
