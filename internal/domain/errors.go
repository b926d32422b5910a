package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches another DomainError with the same code and message, so wrapped
// sentinels still satisfy errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrEmptyQuery           = NewDomainError(ErrCodeValidation, "query must not be empty")
	ErrInvalidPage          = NewDomainError(ErrCodeValidation, "page must be at least 1")
	ErrInvalidLimit         = NewDomainError(ErrCodeValidation, "limit must be between 1 and 100")
	ErrInvalidLanguage      = NewDomainError(ErrCodeValidation, "language must be one of english, tamil, bilingual")
	ErrInvalidDate          = NewDomainError(ErrCodeValidation, "invalid date")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
)

var (
	ErrCaseNotFound      = NewDomainError(ErrCodeNotFound, "case not found")
	ErrCaseAlreadyExists = NewDomainError(ErrCodeAlreadyExists, "case with this doc_id already exists")
)

var ErrInvalidAdminToken = NewDomainError(ErrCodeUnauthorized, "invalid admin token")

// IsCode reports whether err is a DomainError carrying code.
func IsCode(err error, code string) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}
