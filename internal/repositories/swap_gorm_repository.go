package repositories

import (
	"errors"
	"fmt"

	"rewear/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSwapRepository is a GORM implementation of SwapRepository.
type GORMSwapRepository struct {
	db *gorm.DB
}

// NewGORMSwapRepository creates a new instance of GORMSwapRepository.
func NewGORMSwapRepository(db *gorm.DB) *GORMSwapRepository {
	return &GORMSwapRepository{db: db}
}

func (r *GORMSwapRepository) find(query *gorm.DB) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := query.Order("created_at DESC").Order("id").Find(&swaps).Error; err != nil {
		return nil, err
	}
	return swaps, nil
}

// GetAll retrieves every swap request.
func (r *GORMSwapRepository) GetAll() ([]models.SwapRequest, error) {
	swaps, err := r.find(r.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get all swaps: %w", err)
	}
	return swaps, nil
}

// GetByID retrieves a swap request by its ID.
func (r *GORMSwapRepository) GetByID(id string) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.First(&swap, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("swap with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get swap by ID %s: %w", id, err)
	}
	return &swap, nil
}

// GetByUser retrieves the requests a user sent or received.
func (r *GORMSwapRepository) GetByUser(userID string) ([]models.SwapRequest, error) {
	swaps, err := r.find(r.db.Where("requester_id = ? OR owner_id = ?", userID, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get swaps for user %s: %w", userID, err)
	}
	return swaps, nil
}

// GetPendingByItem retrieves pending requests touching itemID.
func (r *GORMSwapRepository) GetPendingByItem(itemID string) ([]models.SwapRequest, error) {
	swaps, err := r.find(r.db.Where("status = ? AND (item_id = ? OR offered_item_id = ?)", models.SwapStatusPending, itemID, itemID))
	if err != nil {
		return nil, fmt.Errorf("failed to get pending swaps for item %s: %w", itemID, err)
	}
	return swaps, nil
}

// Create inserts a new swap request.
func (r *GORMSwapRepository) Create(swap *models.SwapRequest) error {
	if swap.ID == "" {
		swap.ID = uuid.New().String()
	}
	if err := r.db.Create(swap).Error; err != nil {
		return fmt.Errorf("failed to create swap: %w", err)
	}
	return nil
}

// TransitionStatus performs a compare-and-set on the swap status.
func (r *GORMSwapRepository) TransitionStatus(id, from, to string) error {
	res := r.db.Model(&models.SwapRequest{}).Where("id = ? AND status = ?", id, from).Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of swap %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return fmt.Errorf("swap %s is no longer %s: %w", id, from, ErrStatusMismatch)
	}
	return nil
}
