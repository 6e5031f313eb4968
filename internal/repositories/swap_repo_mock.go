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

// MockSwapRepository is an in-memory implementation of SwapRepository.
type MockSwapRepository struct {
	swaps map[string]models.SwapRequest
	mu    sync.RWMutex
}

// NewMockSwapRepository creates a new instance of MockSwapRepository.
func NewMockSwapRepository() *MockSwapRepository {
	return &MockSwapRepository{
		swaps: make(map[string]models.SwapRequest),
	}
}

func (r *MockSwapRepository) collect(keep func(models.SwapRequest) bool) []models.SwapRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.SwapRequest, 0, len(r.swaps))
	for _, s := range r.swaps {
		if keep(s) {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b models.SwapRequest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// GetAll returns all swap requests.
func (r *MockSwapRepository) GetAll() ([]models.SwapRequest, error) {
	return r.collect(func(models.SwapRequest) bool { return true }), nil
}

// GetByID returns a swap request by its ID.
func (r *MockSwapRepository) GetByID(id string) (*models.SwapRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	swap, ok := r.swaps[id]
	if !ok {
		return nil, fmt.Errorf("swap with ID %s: %w", id, ErrNotFound)
	}
	return &swap, nil
}

// GetByUser returns requests involving userID.
func (r *MockSwapRepository) GetByUser(userID string) ([]models.SwapRequest, error) {
	return r.collect(func(s models.SwapRequest) bool { return s.Involves(userID) }), nil
}

// GetPendingByItem returns pending requests touching itemID.
func (r *MockSwapRepository) GetPendingByItem(itemID string) ([]models.SwapRequest, error) {
	return r.collect(func(s models.SwapRequest) bool {
		return s.Status == models.SwapStatusPending && (s.ItemID == itemID || s.OfferedItemID == itemID)
	}), nil
}

// Create adds a new swap request.
func (r *MockSwapRepository) Create(swap *models.SwapRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if swap.ID == "" {
		swap.ID = uuid.New().String()
	}
	if swap.CreatedAt.IsZero() {
		swap.CreatedAt = time.Now()
	}
	swap.UpdatedAt = time.Now()
	r.swaps[swap.ID] = *swap
	return nil
}

// TransitionStatus performs a compare-and-set on the swap status.
func (r *MockSwapRepository) TransitionStatus(id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	swap, ok := r.swaps[id]
	if !ok {
		return fmt.Errorf("swap with ID %s: %w", id, ErrNotFound)
	}
	if swap.Status != from {
		return fmt.Errorf("swap %s is no longer %s: %w", id, from, ErrStatusMismatch)
	}
	swap.Status = to
	swap.UpdatedAt = time.Now()
	r.swaps[id] = swap
	return nil
}
