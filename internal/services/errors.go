package services

import (
	"errors"

	"go.uber.org/zap"

	"rewear/internal/events"
	"rewear/internal/models"
)

var (
	// ErrForbidden is returned when the caller may not act on a resource.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned when the current state of a resource does not
	// allow the request, e.g. the item is no longer available.
	ErrConflict = errors.New("conflict")
	// ErrInvalidTransition is returned for a status change the lifecycle
	// does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrValidation is returned (wrapped with details) for bad input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is returned by login for an unknown email or a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for a malformed, expired or orphaned token.
	ErrInvalidToken = errors.New("invalid token")
)

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// publish emits e and logs a failure. Events are notifications; the state
// change they describe has already been committed.
func publish(logger *zap.Logger, publisher events.Publisher, e events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(e); err != nil {
		logger.Warn("failed to publish event",
			zap.String("type", e.Type),
			zap.String("item_id", e.ItemID),
			zap.String("swap_id", e.SwapID),
			zap.Error(err),
		)
	}
}
