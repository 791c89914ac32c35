package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	ErrUnsupportedCurrency = errors.New("unsupported currency")

	ErrCurrencyMismatch = errors.New("currency does not match loan currency")

	ErrInactiveUser = errors.New("user is not active")

	// ErrInvariantViolation marks a ledger defect: a balance update that would
	// leave an entity outside its allowed range. It always aborts the unit.
	ErrInvariantViolation = errors.New("ledger invariant violation")

	// ErrConcurrencyConflict is transient; the whole repayment unit may be retried.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// InvariantError describes which ledger entity refused a balance update.
type InvariantError struct {
	Entity      string
	ID          int64
	Outstanding int64
	Limit       int64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s %d: outstanding %d outside [0, %d]", e.Entity, e.ID, e.Outstanding, e.Limit)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

func NewInvariantError(entity string, id, outstanding, limit int64) error {
	return &InvariantError{Entity: entity, ID: id, Outstanding: outstanding, Limit: limit}
}

// IsTransient reports whether err may succeed when the whole unit is retried.
func IsTransient(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}
