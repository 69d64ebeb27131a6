package core

import "errors"

// Domain error taxonomy. Services return these (usually wrapped with
// fmt.Errorf("...: %w", err)) and the HTTP layer maps them to status codes.
var (
	// ErrNotFound signals that a transaction, category or installment group
	// does not exist or is not owned by the calling user.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a uniqueness violation, e.g. a duplicate
	// category name+type for the same user.
	ErrConflict = errors.New("conflict")

	// ErrForbidden signals an attempt to delete or un-default a default category.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidOperation signals a business-rule violation on an otherwise
	// well-formed request, e.g. patching an individual installment member.
	ErrInvalidOperation = errors.New("invalid operation")
)

// Field-level validation errors raised by the domain types themselves.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyDescription    = errors.New("empty description")
	ErrDescriptionTooLong  = errors.New("description too long (max 200 characters)")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidMethod       = errors.New("invalid payment method")
	ErrInvalidRate         = errors.New("rate must be between 0 and 100")
	ErrInvalidRecurringDay = errors.New("recurring day must be between 1 and 31")
	ErrInvalidInstallments = errors.New("total installments must be between 2 and 60")
)
