// Package services defines the business logic for accounts, routines, and
// workout sessions. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is returned when login fails. The message is the
	// same whether the email is unknown or the password is wrong, so callers
	// cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDuplicateEmail is returned when registration collides with an
	// existing account's email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidReference is returned when a create targets a parent record
	// (user, routine, or session) that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")

	// ErrSessionNotFound indicates that the requested workout session does
	// not exist. Distinct from a session with zero sets, which is a success.
	ErrSessionNotFound = errors.New("workout session not found")

	// ErrEmptyName is returned when a required name field is blank after
	// trimming.
	ErrEmptyName = errors.New("name is empty")

	// ErrNegativeOrder is returned when an exercise order index is negative.
	ErrNegativeOrder = errors.New("order index must be non-negative")

	// ErrInvalidSetNumber is returned when a set number is not positive.
	ErrInvalidSetNumber = errors.New("set number must be positive")

	// ErrInvalidReps is returned when a rep count is not positive.
	ErrInvalidReps = errors.New("reps must be positive")

	// ErrInvalidWeight is returned when a weight is negative.
	ErrInvalidWeight = errors.New("weight must be non-negative")
)

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// isFKViolation detects foreign-key constraint violations across drivers that
// may not map to gorm.ErrForeignKeyViolated.
func isFKViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	// SQLite typically: "FOREIGN KEY constraint failed"
	// Postgres typically: "violates foreign key constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint")
}
