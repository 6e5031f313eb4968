package repositories

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"rewear/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RedemptionRepository defines the interface for redemption records.
type RedemptionRepository interface {
	Create(r *models.Redemption) error
	GetByUser(userID string) ([]models.Redemption, error)
}

// GORMRedemptionRepository is a GORM implementation of RedemptionRepository.
type GORMRedemptionRepository struct {
	db *gorm.DB
}

// NewGORMRedemptionRepository creates a new instance of GORMRedemptionRepository.
func NewGORMRedemptionRepository(db *gorm.DB) *GORMRedemptionRepository {
	return &GORMRedemptionRepository{db: db}
}

// Create records a redemption.
func (r *GORMRedemptionRepository) Create(red *models.Redemption) error {
	if red.ID == "" {
		red.ID = uuid.New().String()
	}
	if err := r.db.Create(red).Error; err != nil {
		return fmt.Errorf("failed to create redemption: %w", err)
	}
	return nil
}

// GetByUser lists a user's redemptions, newest first.
func (r *GORMRedemptionRepository) GetByUser(userID string) ([]models.Redemption, error) {
	var out []models.Redemption
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to get redemptions for user %s: %w", userID, err)
	}
	return out, nil
}

// MockRedemptionRepository is an in-memory implementation of RedemptionRepository.
type MockRedemptionRepository struct {
	records []models.Redemption
	mu      sync.RWMutex
}

// NewMockRedemptionRepository creates a new instance of MockRedemptionRepository.
func NewMockRedemptionRepository() *MockRedemptionRepository {
	return &MockRedemptionRepository{}
}

// Create records a redemption.
func (r *MockRedemptionRepository) Create(red *models.Redemption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if red.ID == "" {
		red.ID = uuid.New().String()
	}
	if red.CreatedAt.IsZero() {
		red.CreatedAt = time.Now()
	}
	r.records = append(r.records, *red)
	return nil
}

// GetByUser lists a user's redemptions, newest first.
func (r *MockRedemptionRepository) GetByUser(userID string) ([]models.Redemption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Redemption
	for _, red := range r.records {
		if red.UserID == userID {
			out = append(out, red)
		}
	}
	slices.Reverse(out)
	return out, nil
}
