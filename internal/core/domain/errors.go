package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFetchFailed indicates the candidate source could not produce results.
	// Sessions surface it as an error status, never as a crash.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrIncompleteProfile indicates a food is missing one or more per-100g
	// nutrient values and cannot be rendered as a label.
	ErrIncompleteProfile = errors.New("incomplete nutrient profile")

	// ErrSessionClosed indicates an operation on a closed search session.
	ErrSessionClosed = errors.New("search session closed")

	// ErrNoSelection indicates Enter was pressed with no highlighted result.
	ErrNoSelection = errors.New("no result selected")

	// ErrNoTarget indicates a selected result has neither a handler nor a target.
	ErrNoTarget = errors.New("result has no target")

	// ErrSearchUnavailable indicates no food catalog is configured.
	ErrSearchUnavailable = errors.New("search unavailable")
)
