package apperrors

import "errors"

// Error categories. HTTP status mapping keys off these.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrValidationFailed = errors.New("validation failed")
	ErrBusinessRule     = errors.New("business rule violated")
)

// Person errors
var (
	ErrPersonNotFound = NewCustomError(ErrResourceNotFound, "person not found").WithCode("PERSON_NOT_FOUND")
	ErrPersonInactive = NewCustomError(ErrBusinessRule, "person is not active").WithCode("PERSON_INACTIVE")
	ErrInvalidRole    = NewCustomError(ErrValidationFailed, "role must be one of: user, admin").WithCode("INVALID_ROLE")
)

// Season errors
var (
	ErrSeasonNotFound  = NewCustomError(ErrResourceNotFound, "season not found").WithCode("SEASON_NOT_FOUND")
	ErrSeasonNotActive = NewCustomError(ErrBusinessRule, "season does not exist or is not active").WithCode("SEASON_NOT_ACTIVE")
	ErrNoLatestSeason  = NewCustomError(ErrResourceNotFound, "no active season found").WithCode("NO_ACTIVE_SEASON")
)

// Event errors
var (
	ErrEventNotFound       = NewCustomError(ErrResourceNotFound, "event not found").WithCode("EVENT_NOT_FOUND")
	ErrParticipantNotFound = NewCustomError(ErrResourceNotFound, "participant not found").WithCode("PARTICIPANT_NOT_FOUND")
	ErrParticipantExists   = NewCustomError(ErrConflict, "person is already a participant of this event").WithCode("PARTICIPANT_EXISTS")
)

// NewValidationError wraps ErrValidationFailed with a field-level message
func NewValidationError(field, message string) error {
	return (&CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}).WithDetails(map[string]interface{}{"field": field})
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
