package domain

import "errors"

// Sentinel errors shared by the scoring core and its adapters. Wrap them with
// fmt.Errorf("...: %w", ...) and match with errors.Is.
var (
	// ErrNotFound reports an unknown crop, continent, place, or state.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput reports a malformed or incomplete weather snapshot or
	// request parameter.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream reports a failure of the external weather provider. The core
	// never produces it; adapters wrap transport and API errors with it.
	ErrUpstream = errors.New("upstream weather provider error")
)
