package repositories

import (
	"rewear/internal/models"
)

// ItemRepository defines the interface for item data access. List methods
// return items newest first.
type ItemRepository interface {
	GetAll() ([]models.Item, error)
	GetByStatus(status string) ([]models.Item, error)
	GetByUser(userID string) ([]models.Item, error)
	GetByID(id string) (*models.Item, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
	// TransitionStatus moves an item from one status to another, failing with
	// ErrStatusMismatch if it is no longer in the from status.
	TransitionStatus(id, from, to string) error
	Delete(id string) error
}
