package domain

import "errors"

var (
	// ErrCapabilityAbsent signals that a matching tier does not exist on the
	// backend. The cascade advances to the next tier; never shown to users.
	ErrCapabilityAbsent = errors.New("matching capability absent")
	// ErrSearchUnavailable signals that a strict practice-area search reached
	// the full-listing tier and was refused rather than degraded.
	ErrSearchUnavailable = errors.New("search unavailable")
	// ErrInvalidCriteria signals malformed search parameters.
	ErrInvalidCriteria = errors.New("invalid search criteria")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
