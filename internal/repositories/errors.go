package repositories

import "errors"

var (
	// ErrNotFound is returned (wrapped) when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStatusMismatch is returned when a guarded status transition finds
	// the record in a different status than expected.
	ErrStatusMismatch = errors.New("status changed concurrently")
	// ErrInsufficientPoints is returned when a debit would make a balance negative.
	ErrInsufficientPoints = errors.New("insufficient points")
	// ErrDuplicate is returned when a unique field is already taken.
	ErrDuplicate = errors.New("already exists")
)
