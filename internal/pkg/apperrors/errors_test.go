package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvariantErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvariantError
		expected string
	}{
		{
			name:     "Negative outstanding",
			err:      &InvariantError{Entity: "scheduled_repayment", ID: 7, Outstanding: -1, Limit: 333},
			expected: "scheduled_repayment 7: outstanding -1 outside [0, 333]",
		},
		{
			name:     "Above principal",
			err:      &InvariantError{Entity: "loan", ID: 1, Outstanding: 1001, Limit: 1000},
			expected: "loan 1: outstanding 1001 outside [0, 1000]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestInvariantErrorUnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("apply repayment: %w", NewInvariantError("loan", 1, -5, 100))
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected %v to wrap ErrInvariantViolation", err)
	}

	var invErr *InvariantError
	if !errors.As(err, &invErr) || invErr.Outstanding != -5 {
		t.Fatalf("expected InvariantError with outstanding -5, got %v", err)
	}
}

func TestValidationErrorWrapsSentinel(t *testing.T) {
	err := NewValidationError("amount", "must be greater than zero")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "amount" {
		t.Fatalf("expected ValidationError for amount, got %v", err)
	}
}

func TestIsTransient(t *testing.T) {
	if !IsTransient(fmt.Errorf("%w: serialization failure", ErrConcurrencyConflict)) {
		t.Error("expected concurrency conflict to be transient")
	}
	if IsTransient(ErrDatabase) {
		t.Error("expected database error to be permanent")
	}
}
