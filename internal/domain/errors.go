package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// entity does not exist in the current document.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative amount).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrLastTrip is returned when deleting a trip would leave the document with
// no trips at all. At least one trip must always exist.
// Handlers should map this to HTTP 409 Conflict.
var ErrLastTrip = errors.New("at least one trip is required")

// ErrCorruptDocument is returned by the store when the persisted document is
// not valid JSON. This is fatal for load — no partial recovery is attempted.
var ErrCorruptDocument = errors.New("corrupt document")
