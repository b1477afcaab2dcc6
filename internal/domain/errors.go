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

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError wraps a validation failure so it maps to a 400.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// ErrorCode extracts the code of the first DomainError in err's chain.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return ErrorCode(err) == ErrCodeNotFound
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrInvalidFAQStatus    = NewDomainError(ErrCodeValidation, "invalid faq status")
	ErrInvalidChatRole     = NewDomainError(ErrCodeValidation, "invalid chat message role")
	ErrEmptyChatMessage    = NewDomainError(ErrCodeValidation, "chat message content is empty")
	ErrTooManyChatMessages = NewDomainError(ErrCodeValidation, "too many chat messages")
	ErrUnknownReference    = NewDomainError(ErrCodeValidation, "referenced domain or keyword does not exist")
)

// Not found errors
var (
	ErrFAQNotFound     = NewDomainError(ErrCodeNotFound, "faq not found")
	ErrDomainNotFound  = NewDomainError(ErrCodeNotFound, "domain not found")
	ErrKeywordNotFound = NewDomainError(ErrCodeNotFound, "keyword not found")
)

var ErrRateLimited = NewDomainError(ErrCodeRateLimited, "too many requests")
