// Package domain holds the error taxonomy shared by every ShareIt service.
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure. The transport layer maps each kind to a status code.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindValidation ErrorKind = "VALIDATION_ERROR"
	KindLogical    ErrorKind = "LOGICAL_ERROR"
	KindForbidden  ErrorKind = "FORBIDDEN"
	KindConflict   ErrorKind = "CONFLICT"
)

// DomainError is an expected, non-retryable failure caused by input or persisted state.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewNotFoundError reports that a referenced resource does not exist.
func NewNotFoundError(resource string, id any) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", resource, id)}
}

// NewValidationError reports malformed input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// NewLogicalError reports a violated business rule.
func NewLogicalError(message string) *DomainError {
	return &DomainError{Kind: KindLogical, Message: message}
}

// NewForbiddenError reports that the caller lacks rights for the action.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Kind: KindForbidden, Message: message}
}

// NewConflictError reports a uniqueness or concurrent-modification conflict.
func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// KindOf returns the kind of the first DomainError in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsNotFound reports whether err is a NotFound domain error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsValidation reports whether err is a Validation domain error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsLogical reports whether err is a Logical domain error.
func IsLogical(err error) bool { return KindOf(err) == KindLogical }

// IsForbidden reports whether err is a Forbidden domain error.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// IsConflict reports whether err is a Conflict domain error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
