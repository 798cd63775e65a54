package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyFields indicates a search query named no fields to search.
	// This is programmer misuse, not a data condition.
	ErrEmptyFields = errors.New("no search fields specified")

	// ErrUnknownField indicates a search query named a field the engine
	// does not index. Unknown fields are never silently ignored.
	ErrUnknownField = errors.New("unknown search field")

	// ErrHistoryUnavailable indicates the history persistence substrate
	// failed. Recording degrades to in-memory and never surfaces this;
	// only an explicit clear reports it.
	ErrHistoryUnavailable = errors.New("search history unavailable")
)
