package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// itinerary (or nested entry) does not exist in the live collection.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, unknown destination, days out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
