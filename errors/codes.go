package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input/output errors
const (
	// ErrCodeIOFault indicates a read from an input or a write to the output failed.
	ErrCodeIOFault ErrorCode = "IO_FAULT"
	// ErrCodeUnsortedInput indicates an input is not sorted on its join field.
	ErrCodeUnsortedInput ErrorCode = "UNSORTED_INPUT"
)

// Configuration errors
const (
	// ErrCodeConfigConflict indicates two settings contradict each other.
	ErrCodeConfigConflict ErrorCode = "CONFIG_CONFLICT"
	// ErrCodeInvalidFieldSpec indicates a join field number is not a positive integer.
	ErrCodeInvalidFieldSpec ErrorCode = "INVALID_FIELD_SPEC"
	// ErrCodeSeparatorTooLong indicates the field separator is longer than one character.
	ErrCodeSeparatorTooLong ErrorCode = "SEPARATOR_TOO_LONG"
	// ErrCodeInvalidFileNumber indicates the unpaired side is neither 1 nor 2.
	ErrCodeInvalidFileNumber ErrorCode = "INVALID_FILE_NUMBER"
	// ErrCodeInvalidInput indicates a configuration value failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeInterrupted indicates the run was canceled before it finished.
	ErrCodeInterrupted ErrorCode = "INTERRUPTED"
)

// ExitFailure is the process status for every fatal condition.
const ExitFailure = 1

var exitCodes = map[ErrorCode]int{
	ErrCodeIOFault:           ExitFailure,
	ErrCodeUnsortedInput:     ExitFailure,
	ErrCodeConfigConflict:    ExitFailure,
	ErrCodeInvalidFieldSpec:  ExitFailure,
	ErrCodeSeparatorTooLong:  ExitFailure,
	ErrCodeInvalidFileNumber: ExitFailure,
	ErrCodeInvalidInput:      ExitFailure,
	ErrCodeInternal:          ExitFailure,
	ErrCodeInterrupted:       ExitFailure,
}

// ExitCodeFor returns the process exit status for an error code.
func ExitCodeFor(code ErrorCode) int {
	if status, ok := exitCodes[code]; ok {
		return status
	}
	return ExitFailure
}

// IsConfigCode reports whether the code is raised before any input line is read.
func IsConfigCode(code ErrorCode) bool {
	switch code {
	case ErrCodeConfigConflict, ErrCodeInvalidFieldSpec, ErrCodeSeparatorTooLong,
		ErrCodeInvalidFileNumber, ErrCodeInvalidInput:
		return true
	}
	return false
}
