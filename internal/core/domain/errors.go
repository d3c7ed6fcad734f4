package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrDuplicateEmail     = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrUnauthorized       = errors.New("not authorized")
	ErrForbidden          = errors.New("access forbidden")
)

// ValidationError reports a single field that failed a domain constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RoleMismatchError is returned when login credentials are correct but the
// claimed account type differs from the stored one. The message deliberately
// names the actual role so the caller can retry with the right account type.
type RoleMismatchError struct {
	Actual  Role
	Claimed Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("this account is registered as %s, not %s; please select the correct account type", e.Actual, e.Claimed)
}
