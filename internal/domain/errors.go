package domain

import (
	"errors"
	"fmt"
)

// Domain errors returned by services and repository implementations.

var (
	// ErrNotFound indicates the requested resource does not exist or is not
	// owned by the caller. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("resource not found")

	// ErrUserExists indicates the username or email is already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound indicates no user matches the given identity.
	ErrUserNotFound = errors.New("user not found")

	// ErrWrongPassword indicates a failed password comparison.
	ErrWrongPassword = errors.New("wrong password")

	// ErrUnauthorized indicates a missing, malformed, or expired token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMissingToken indicates the request carried no bearer token at all.
	ErrMissingToken = errors.New("no token provided")

	// ErrRateLimited indicates too many login attempts from one address.
	ErrRateLimited = errors.New("too many attempts")

	// ErrDuplicateName indicates a per-user (or per-category) unique name
	// collision for priorities, statuses, categories, or category values.
	ErrDuplicateName = errors.New("name already exists")

	// ErrDuplicateTitle indicates the user already has a task with this title.
	ErrDuplicateTitle = errors.New("task title already exists")

	// ErrStatusNotConfigured indicates the user is missing the seeded status
	// new tasks are placed in.
	ErrStatusNotConfigured = errors.New("default status not configured")

	// ErrNoFieldsToUpdate indicates a profile update carried no known fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// ValidationError reports a missing or malformed required field.
// Only the first detected field is reported.
type ValidationError struct {
	Field string
	Issue string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Issue)
}

// MissingField builds a ValidationError for an absent required field.
func MissingField(field string) error {
	return &ValidationError{Field: field, Issue: "is required"}
}
