package services

import (
	"errors"
	"fmt"

	"rewear/internal/events"
	"rewear/internal/models"
	"rewear/internal/repositories"
	"rewear/internal/storage"

	"go.uber.org/zap"
)

// Stats are the marketplace totals shown on the admin panel.
type Stats struct {
	TotalItems     int `json:"total_items"`
	PendingItems   int `json:"pending_items"`
	AvailableItems int `json:"available_items"`
	SwappedItems   int `json:"swapped_items"`
	RedeemedItems  int `json:"redeemed_items"`
	TotalUsers     int `json:"total_users"`
	TotalSwaps     int `json:"total_swaps"`
	PendingSwaps   int `json:"pending_swaps"`
}

// ModerationService implements the admin workflows: approving listings,
// managing roles and reporting totals.
type ModerationService struct {
	repos        repositories.Repositories
	tx           repositories.Transactor
	images       storage.ImageStore
	rewardPoints int
	publisher    events.Publisher
	logger       *zap.Logger
}

// NewModerationService creates a new ModerationService. rewardPoints are
// credited to the owner when a listing is approved; images holds the photos
// of rejected listings.
func NewModerationService(repos repositories.Repositories, tx repositories.Transactor, images storage.ImageStore, rewardPoints int, publisher events.Publisher, logger *zap.Logger) *ModerationService {
	return &ModerationService{
		repos:        repos,
		tx:           tx,
		images:       images,
		rewardPoints: rewardPoints,
		publisher:    publisher,
		logger:       logger,
	}
}

// PendingItems returns the moderation queue, newest first.
func (s *ModerationService) PendingItems() ([]models.Item, error) {
	return s.repos.Items.GetByStatus(models.ItemStatusPendingApproval)
}

// Approve publishes a pending listing and credits the listing reward.
func (s *ModerationService) Approve(itemID string) (*models.Item, error) {
	var approved *models.Item
	err := s.tx.WithinTransaction(func(repos repositories.Repositories) error {
		item, err := repos.Items.GetByID(itemID)
		if err != nil {
			return err
		}
		if item.Status != models.ItemStatusPendingApproval {
			return fmt.Errorf("item %s is %s: %w", itemID, item.Status, ErrInvalidTransition)
		}
		if len(item.Images) == 0 {
			return fmt.Errorf("%w: item %s has no images", ErrValidation, itemID)
		}
		if err := repos.Items.TransitionStatus(itemID, models.ItemStatusPendingApproval, models.ItemStatusAvailable); err != nil {
			return mapStatusMismatch(err, ErrInvalidTransition)
		}
		if s.rewardPoints > 0 {
			if err := repos.Users.AdjustPoints(item.UserID, s.rewardPoints); err != nil {
				return fmt.Errorf("failed to credit listing reward: %w", err)
			}
		}
		item.Status = models.ItemStatusAvailable
		approved = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item approved", zap.String("item_id", itemID), zap.Int("reward", s.rewardPoints))
	publish(s.logger, s.publisher, events.Event{Type: events.ItemApproved, ItemID: itemID, UserID: approved.UserID, Points: s.rewardPoints})
	return approved, nil
}

// Reject removes a pending listing and its uploaded photos.
func (s *ModerationService) Reject(itemID string) error {
	var rejected *models.Item
	err := s.tx.WithinTransaction(func(repos repositories.Repositories) error {
		item, err := repos.Items.GetByID(itemID)
		if err != nil {
			return err
		}
		if item.Status != models.ItemStatusPendingApproval {
			return fmt.Errorf("item %s is %s: %w", itemID, item.Status, ErrInvalidTransition)
		}
		if err := rejectPendingFor(repos, []string{itemID}, ""); err != nil {
			return err
		}
		if err := repos.Items.Delete(itemID); err != nil {
			return fmt.Errorf("failed to remove rejected item: %w", err)
		}
		rejected = item
		return nil
	})
	if err != nil {
		return err
	}

	removeImages(s.logger, s.images, rejected.Images)
	s.logger.Info("item rejected", zap.String("item_id", itemID))
	publish(s.logger, s.publisher, events.Event{Type: events.ItemRejected, ItemID: itemID, UserID: rejected.UserID})
	return nil
}

// Stats counts items by status, accounts and swap requests.
func (s *ModerationService) Stats() (Stats, error) {
	items, err := s.repos.Items.GetAll()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load items: %w", err)
	}
	users, err := s.repos.Users.GetAll()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load users: %w", err)
	}
	swaps, err := s.repos.Swaps.GetAll()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load swaps: %w", err)
	}

	st := Stats{TotalItems: len(items), TotalUsers: len(users), TotalSwaps: len(swaps)}
	for _, it := range items {
		switch it.Status {
		case models.ItemStatusPendingApproval:
			st.PendingItems++
		case models.ItemStatusAvailable:
			st.AvailableItems++
		case models.ItemStatusSwapped:
			st.SwappedItems++
		case models.ItemStatusRedeemed:
			st.RedeemedItems++
		}
	}
	for _, sw := range swaps {
		if sw.Status == models.SwapStatusPending {
			st.PendingSwaps++
		}
	}
	return st, nil
}

// Users lists every account.
func (s *ModerationService) Users() ([]models.User, error) {
	return s.repos.Users.GetAll()
}

// Swaps lists every swap request, newest first.
func (s *ModerationService) Swaps() ([]models.SwapRequest, error) {
	return s.repos.Swaps.GetAll()
}

// SetRole changes an account's role.
func (s *ModerationService) SetRole(userID, role string) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if err := s.repos.Users.UpdateRole(userID, role); err != nil {
		return err
	}
	s.logger.Info("role changed", zap.String("user_id", userID), zap.String("role", role))
	return nil
}

// mapStatusMismatch translates a lost compare-and-set into target.
func mapStatusMismatch(err, target error) error {
	if errors.Is(err, repositories.ErrStatusMismatch) {
		return fmt.Errorf("%w: %v", target, err)
	}
	return err
}
