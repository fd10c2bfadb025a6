package domain

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates input that fails a domain rule.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition indicates a status change not allowed by the
	// transition table of the entity.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicatePlan indicates a plan already present in a document.
	ErrDuplicatePlan = errors.New("plan already added to document")

	// ErrNoTasksDone indicates an attempt to close a visit with no tasks marked done.
	ErrNoTasksDone = errors.New("no tasks marked done")
)
