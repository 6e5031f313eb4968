package repositories

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"rewear/internal/models"

	"github.com/google/uuid"
)

// MockItemRepository is an in-memory implementation of ItemRepository.
type MockItemRepository struct {
	items map[string]models.Item
	mu    sync.RWMutex
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items: make(map[string]models.Item),
	}
}

func (r *MockItemRepository) collect(keep func(models.Item) bool) []models.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Item, 0, len(r.items))
	for _, it := range r.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b models.Item) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// GetAll returns all items.
func (r *MockItemRepository) GetAll() ([]models.Item, error) {
	return r.collect(func(models.Item) bool { return true }), nil
}

// GetByStatus returns items in status.
func (r *MockItemRepository) GetByStatus(status string) ([]models.Item, error) {
	return r.collect(func(it models.Item) bool { return it.Status == status }), nil
}

// GetByUser returns items listed by userID.
func (r *MockItemRepository) GetByUser(userID string) ([]models.Item, error) {
	return r.collect(func(it models.Item) bool { return it.UserID == userID }), nil
}

// GetByID returns an item by its ID.
func (r *MockItemRepository) GetByID(id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	return &item, nil
}

// Create adds a new item.
func (r *MockItemRepository) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

// Update saves the descriptive fields of an item still in the status it was
// read with.
func (r *MockItemRepository) Update(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("item with ID %s: %w", item.ID, ErrNotFound)
	}
	if existing.Status != item.Status {
		return fmt.Errorf("item %s is no longer %s: %w", item.ID, item.Status, ErrStatusMismatch)
	}
	existing.Title = item.Title
	existing.Description = item.Description
	existing.Tags = item.Tags
	existing.Images = item.Images
	existing.Location = item.Location
	existing.UpdatedAt = time.Now()
	r.items[item.ID] = existing
	item.UpdatedAt = existing.UpdatedAt
	return nil
}

// TransitionStatus performs a compare-and-set on the item status.
func (r *MockItemRepository) TransitionStatus(id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	if item.Status != from {
		return fmt.Errorf("item %s is no longer %s: %w", id, from, ErrStatusMismatch)
	}
	item.Status = to
	item.UpdatedAt = time.Now()
	r.items[id] = item
	return nil
}

// Delete removes an item by its ID.
func (r *MockItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}
