package services

import "errors"

// ValidationError is rejected input, detected before any store access.
type ValidationError struct {
	msg string
}

// NewValidationError creates a validation error with a human-readable reason
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// ErrNotFound covers missing records and ownership violations alike, so a
// crafted link cannot distinguish "does not exist" from "not yours".
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned on a failed login attempt
var ErrInvalidCredentials = errors.New("invalid email or password")
