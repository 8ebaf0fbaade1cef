package errors

import (
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// ExitCode is the process exit status this error maps to.
	ExitCode int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with the exit status derived from its code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		ExitCode: ExitCodeFor(code),
	}
}

// --- Constructors ---

// IOFault creates a new AppError for a failed read or write on a named stream.
func IOFault(name string, cause error) *AppError {
	msg := name
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", name, cause)
	}
	return &AppError{
		Code: ErrCodeIOFault, Message: msg, ExitCode: ExitFailure,
		Details: map[string]any{"stream": name}, Cause: cause,
	}
}

// UnsortedInput creates a new AppError for an input whose keys decrease.
func UnsortedInput(name string, line int, previous, current string) *AppError {
	return &AppError{
		Code: ErrCodeUnsortedInput, Message: fmt.Sprintf("%s:%d: is not sorted: %q after %q", name, line, current, previous),
		ExitCode: ExitFailure,
		Details:  map[string]any{"stream": name, "line": line},
	}
}

// ConfigConflict creates a new AppError for contradictory settings.
func ConfigConflict(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfigConflict, Message: reason, ExitCode: ExitFailure,
	}
}

// InvalidFieldSpec creates a new AppError for a field number that is not a positive integer.
func InvalidFieldSpec(value string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidFieldSpec, Message: fmt.Sprintf("invalid field number: '%s'", value),
		ExitCode: ExitFailure,
		Details:  map[string]any{"value": value},
	}
}

// SeparatorTooLong creates a new AppError for a multi-character separator.
func SeparatorTooLong(value string) *AppError {
	return &AppError{
		Code: ErrCodeSeparatorTooLong, Message: fmt.Sprintf("multi-character tab %s", value),
		ExitCode: ExitFailure,
		Details:  map[string]any{"value": value},
	}
}

// InvalidFileNumber creates a new AppError for an unpaired side that is not 1 or 2.
func InvalidFileNumber(value string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidFileNumber, Message: fmt.Sprintf("invalid file number: %s", value),
		ExitCode: ExitFailure,
		Details:  map[string]any{"value": value},
	}
}

// InvalidInput creates a new AppError for an invalid configuration field.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid %s: %s", field, reason),
		ExitCode: ExitFailure, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message, ExitCode: ExitFailure,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	msg := "unexpected error"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code: ErrCodeInternal, Message: msg, ExitCode: ExitFailure, Cause: cause,
	}
}

// Interrupted creates a new AppError for a run stopped by cancellation.
func Interrupted(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInterrupted, Message: "interrupted", ExitCode: ExitFailure, Cause: cause,
	}
}
