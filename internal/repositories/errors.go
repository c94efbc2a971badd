package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Common repository errors.
var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a uniqueness constraint rejects a write.
	ErrDuplicate = errors.New("already exists")
	// ErrDuplicateApplication is returned when the user already applied for the job.
	ErrDuplicateApplication error = &kindError{msg: "You have already applied for this job", kind: ErrDuplicate}
	// ErrValidation is returned when input breaks a domain rule.
	ErrValidation = errors.New("validation failed")
)

// kindError carries its own message while matching a broader sentinel
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// notFound wraps ErrNotFound with the entity name, e.g. "job not found"
func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Drivers without error translation still report the constraint by name.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
