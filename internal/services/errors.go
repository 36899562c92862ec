package services

import "errors"

var (
	// ErrInvalidInput marks malformed or insufficient input, e.g. a forecast shorter than a week.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable marks a failed weather, catalog or broker dependency. Callers
	// should ask the user to try again rather than guess.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrComputation is a defect: valid input produced an impossible result.
	ErrComputation = errors.New("computation error")
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
)
