package domain

import "errors"

var (
	// ErrNotFound indicates the requested plant does not exist.
	ErrNotFound = errors.New("plant not found")

	// ErrForbidden indicates the caller does not own the plant.
	ErrForbidden = errors.New("plant not owned by caller")

	// ErrValidation wraps all pre-submission validation failures.
	ErrValidation = errors.New("invalid plant")
)
