// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels shared by the date, model and species layers.
var (
	// ErrInvalidDate indicates a date string that does not parse as YYYY-MM-DD.
	// It is propagated to the caller, never silently coerced to "today".
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrSpeciesUnknown indicates a plant referencing a species id that is
	// absent from the knowledge base. Fatal to that plant only; processing of
	// the rest of the collection continues.
	ErrSpeciesUnknown = errors.New("species not found in catalog")

	// ErrIndexOutOfRange indicates a log removal with an invalid position.
	ErrIndexOutOfRange = errors.New("log index out of range")

	// ErrPlantNotFound indicates an operation addressed a plant id that is
	// not in the collection.
	ErrPlantNotFound = errors.New("plant not found")
)
