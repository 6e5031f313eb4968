package repositories

import "rewear/internal/models"

// SwapRepository defines the interface for swap request data access. List
// methods return requests newest first.
type SwapRepository interface {
	GetAll() ([]models.SwapRequest, error)
	GetByID(id string) (*models.SwapRequest, error)
	// GetByUser returns requests where userID is the requester or the owner.
	GetByUser(userID string) ([]models.SwapRequest, error)
	// GetPendingByItem returns pending requests that reference itemID as the
	// requested or the offered item.
	GetPendingByItem(itemID string) ([]models.SwapRequest, error)
	Create(swap *models.SwapRequest) error
	TransitionStatus(id, from, to string) error
}
