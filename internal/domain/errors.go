package domain

import (
	"errors"
	"fmt"
)

var (
	ErrHospitalNotFound = errors.New("hospital not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotFound         = errors.New("not found")
)

// ValidationError names the offending request field. Rendering never
// produces one of these; only input checks do.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
