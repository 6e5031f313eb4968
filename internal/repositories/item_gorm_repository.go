package repositories

import (
	"errors"
	"fmt"
	"time"

	"rewear/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var itemDescriptiveColumns = []string{"title", "description", "tags", "images", "location", "updated_at"}

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

func (r *GORMItemRepository) find(query *gorm.DB) ([]models.Item, error) {
	var items []models.Item
	if err := query.Order("created_at DESC").Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetAll retrieves every item regardless of status.
func (r *GORMItemRepository) GetAll() ([]models.Item, error) {
	items, err := r.find(r.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return items, nil
}

// GetByStatus retrieves the items currently in status.
func (r *GORMItemRepository) GetByStatus(status string) ([]models.Item, error) {
	items, err := r.find(r.db.Where("status = ?", status))
	if err != nil {
		return nil, fmt.Errorf("failed to get items with status %s: %w", status, err)
	}
	return items, nil
}

// GetByUser retrieves the items listed by userID.
func (r *GORMItemRepository) GetByUser(userID string) ([]models.Item, error) {
	items, err := r.find(r.db.Where("user_id = ?", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get items for user %s: %w", userID, err)
	}
	return items, nil
}

// GetByID retrieves a single item by its ID.
func (r *GORMItemRepository) GetByID(id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Create inserts a new item, assigning an ID when none is set.
func (r *GORMItemRepository) Create(item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update saves the descriptive fields of an item. The write only applies
// while the item is still in the status it was read with; lifecycle fields
// change through TransitionStatus alone.
func (r *GORMItemRepository) Update(item *models.Item) error {
	res := r.db.Model(&models.Item{}).
		Where("id = ? AND status = ?", item.ID, item.Status).
		Select(itemDescriptiveColumns).
		Updates(map[string]any{
			"title":       item.Title,
			"description": item.Description,
			"tags":        item.Tags,
			"images":      item.Images,
			"location":    item.Location,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(item.ID); err != nil {
			return err
		}
		return fmt.Errorf("item %s is no longer %s: %w", item.ID, item.Status, ErrStatusMismatch)
	}
	return nil
}

// TransitionStatus performs a compare-and-set on the item status.
func (r *GORMItemRepository) TransitionStatus(id, from, to string) error {
	res := r.db.Model(&models.Item{}).Where("id = ? AND status = ?", id, from).Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return fmt.Errorf("item %s is no longer %s: %w", id, from, ErrStatusMismatch)
	}
	return nil
}

// Delete removes an item by its ID.
func (r *GORMItemRepository) Delete(id string) error {
	res := r.db.Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
