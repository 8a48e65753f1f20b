package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or exists but belongs to a different owner.
// The two cases are indistinguishable to callers so that one user can never
// probe for another user's trips. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDateConflict is returned by the trip creation path when the candidate
// trip's date range overlaps an existing trip of the same owner.
// Handlers should map this to HTTP 409 Conflict.
var ErrDateConflict = errors.New("date conflict")
