package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// PreconditionReason identifies why the edit-lock precondition rejected
// a mutation. The values are machine-readable and stable so clients can
// render an explanatory message.
type PreconditionReason string

const (
	// ReasonNotOwner: the requester is not the recipe's creator.
	ReasonNotOwner PreconditionReason = "not-owner"
	// ReasonHasVariants: the recipe has been forked at least once.
	ReasonHasVariants PreconditionReason = "has-variants"
	// ReasonHasLogs: the recipe has cooking-log history.
	ReasonHasLogs PreconditionReason = "has-logs"
)

// PreconditionError is returned when a recipe cannot be updated or
// deleted because the edit-lock invariant does not hold. It is distinct
// from a generic authorization failure: the caller is allowed to know
// exactly which condition blocked the mutation.
type PreconditionError struct {
	Reason PreconditionReason
}

// Error returns a formatted error message for the precondition failure.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

// IsPrecondition reports whether err is a PreconditionError and returns it.
func IsPrecondition(err error) (*PreconditionError, bool) {
	var pe *PreconditionError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
