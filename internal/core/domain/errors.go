package domain

import "errors"

// Shared domain errors. Repositories return these; services and handlers
// map them to user-facing failures.
var (
	ErrItemNotFound = errors.New("item not found")
	ErrLoanNotFound = errors.New("loan not found")
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidTransition is returned when a lifecycle event is applied to
	// a loan whose current status does not permit it.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrLastSuperAdmin guards the invariant that at least one SuperAdmin
	// account exists at all times.
	ErrLastSuperAdmin = errors.New("at least one SuperAdmin must remain")
)
