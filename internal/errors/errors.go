package errors

import "fmt"

// Error codes
const (
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeDuplicateDeck    = "DUPLICATE_DECK"
	CodeDuplicateProblem = "DUPLICATE_PROBLEM"
	CodeDeckNotFound     = "DECK_NOT_FOUND"
	CodeDeckNotEmpty     = "DECK_NOT_EMPTY"
	CodeCorruptTagRecord = "CORRUPT_TAG_RECORD"
	CodeCorruptState     = "CORRUPT_STATE"
	CodeValidation       = "VALIDATION_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError represents an application error with an error code and HTTP status
type AppError struct {
	Code    string // Error code (e.g., "DECK_NOT_FOUND")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of an AppError, or CodeInternal for any other error.
func CodeOf(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code string) bool {
	return CodeOf(err) == code
}

// NewStoreUnavailable signals that the backing database could not be opened.
// Fatal for the session; callers abort rather than retry.
func NewStoreUnavailable(err error) *AppError {
	return &AppError{
		Code:    CodeStoreUnavailable,
		Message: "problem store unavailable",
		Status:  503,
		Err:     err,
	}
}

// NewDuplicateDeck creates a DUPLICATE_DECK error
func NewDuplicateDeck(name string) *AppError {
	return &AppError{
		Code:    CodeDuplicateDeck,
		Message: fmt.Sprintf("deck %q already exists", name),
		Status:  409,
	}
}

// NewDuplicateProblem creates a DUPLICATE_PROBLEM error
func NewDuplicateProblem() *AppError {
	return &AppError{
		Code:    CodeDuplicateProblem,
		Message: "a problem with identical content already exists",
		Status:  409,
	}
}

// NewDeckNotFound creates a DECK_NOT_FOUND error
func NewDeckNotFound(deck any) *AppError {
	return &AppError{
		Code:    CodeDeckNotFound,
		Message: fmt.Sprintf("deck not found: %v", deck),
		Status:  404,
	}
}

// NewDeckNotEmpty creates a DECK_NOT_EMPTY error
func NewDeckNotEmpty(name string) *AppError {
	return &AppError{
		Code:    CodeDeckNotEmpty,
		Message: fmt.Sprintf("deck %q still contains problems", name),
		Status:  409,
	}
}

// NewCorruptTagRecord signals a stored tag whose name is missing or empty.
func NewCorruptTagRecord(tagID int64) *AppError {
	return &AppError{
		Code:    CodeCorruptTagRecord,
		Message: fmt.Sprintf("tag %d has a missing or empty name", tagID),
		Status:  500,
	}
}

// NewCorruptState signals data violating an invariant the store itself
// guarantees. Indicates a bug; log loudly.
func NewCorruptState(message string) *AppError {
	return &AppError{
		Code:    CodeCorruptState,
		Message: message,
		Status:  500,
	}
}

// NewValidationError creates a VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates an INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal error",
		Status:  500,
		Err:     err,
	}
}
