package repositories

import "rewear/internal/models"

// UserRepository defines the interface for account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAll() ([]models.User, error)
	// UpdateProfile saves the display name, location and bio.
	UpdateProfile(user *models.User) error
	// AdjustPoints adds delta to the balance. A debit larger than the balance
	// fails with ErrInsufficientPoints and changes nothing.
	AdjustPoints(id string, delta int) error
	UpdateRole(id, role string) error
}
