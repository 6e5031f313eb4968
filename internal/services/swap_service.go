package services

import (
	"errors"
	"fmt"
	"strings"

	"rewear/internal/events"
	"rewear/internal/models"
	"rewear/internal/repositories"

	"go.uber.org/zap"
)

// MaxSwapMessageLength bounds the note attached to a swap request.
const MaxSwapMessageLength = 500

// SwapService handles swap requests between two accounts.
type SwapService struct {
	repos     repositories.Repositories
	tx        repositories.Transactor
	publisher events.Publisher
	logger    *zap.Logger
}

// NewSwapService creates a new SwapService.
func NewSwapService(repos repositories.Repositories, tx repositories.Transactor, publisher events.Publisher, logger *zap.Logger) *SwapService {
	return &SwapService{repos: repos, tx: tx, publisher: publisher, logger: logger}
}

// RequestSwap asks the owner of itemID for an exchange. offeredItemID is
// optional; when set it must be one of the requester's available items.
func (s *SwapService) RequestSwap(requesterID, itemID, offeredItemID, message string) (*models.SwapRequest, error) {
	message = strings.TrimSpace(message)
	if len(message) > MaxSwapMessageLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", ErrValidation, MaxSwapMessageLength)
	}

	requester, err := s.repos.Users.GetByID(requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requester: %w", err)
	}
	item, err := s.repos.Items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID == requesterID {
		return nil, fmt.Errorf("cannot request a swap for your own item: %w", ErrForbidden)
	}
	if !item.IsAvailable() {
		return nil, fmt.Errorf("item %s is %s: %w", itemID, item.Status, ErrConflict)
	}

	var offered *models.Item
	if offeredItemID != "" {
		if offeredItemID == itemID {
			return nil, fmt.Errorf("%w: offered item must differ from the requested item", ErrValidation)
		}
		offered, err = s.repos.Items.GetByID(offeredItemID)
		if err != nil {
			return nil, err
		}
		if offered.UserID != requesterID {
			return nil, fmt.Errorf("offered item %s belongs to another user: %w", offeredItemID, ErrForbidden)
		}
		if !offered.IsAvailable() {
			return nil, fmt.Errorf("offered item %s is %s: %w", offeredItemID, offered.Status, ErrConflict)
		}
	}

	pending, err := s.repos.Swaps.GetPendingByItem(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending swaps: %w", err)
	}
	for _, p := range pending {
		if p.ItemID == itemID && p.RequesterID == requesterID {
			return nil, fmt.Errorf("a swap request for item %s is already pending: %w", itemID, ErrConflict)
		}
	}

	owner, err := s.repos.Users.GetByID(item.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}

	swap := &models.SwapRequest{
		RequesterID:   requester.ID,
		RequesterName: requester.DisplayName,
		ItemID:        item.ID,
		ItemTitle:     item.Title,
		OwnerID:       owner.ID,
		OwnerName:     owner.DisplayName,
		Message:       message,
		Status:        models.SwapStatusPending,
	}
	if offered != nil {
		swap.OfferedItemID = offered.ID
		swap.OfferedItemTitle = offered.Title
	}
	if err := s.repos.Swaps.Create(swap); err != nil {
		return nil, fmt.Errorf("failed to create swap request: %w", err)
	}

	s.logger.Info("swap requested", zap.String("swap_id", swap.ID), zap.String("item_id", itemID))
	publish(s.logger, s.publisher, events.Event{Type: events.SwapRequested, SwapID: swap.ID, ItemID: itemID, UserID: requesterID})
	return swap, nil
}

// Accept completes a pending swap. Both items leave circulation and every
// other pending request touching either item is rejected.
func (s *SwapService) Accept(swapID, actorID string) (*models.SwapRequest, error) {
	var accepted *models.SwapRequest
	err := s.tx.WithinTransaction(func(repos repositories.Repositories) error {
		swap, err := s.pendingForOwner(repos, swapID, actorID)
		if err != nil {
			return err
		}

		itemIDs := []string{swap.ItemID}
		if swap.OfferedItemID != "" {
			itemIDs = append(itemIDs, swap.OfferedItemID)
		}
		for _, id := range itemIDs {
			item, err := repos.Items.GetByID(id)
			if err != nil {
				return err
			}
			if !item.IsAvailable() {
				return fmt.Errorf("item %s is %s: %w", id, item.Status, ErrConflict)
			}
		}
		for _, id := range itemIDs {
			if err := repos.Items.TransitionStatus(id, models.ItemStatusAvailable, models.ItemStatusSwapped); err != nil {
				return mapStatusMismatch(err, ErrConflict)
			}
		}
		if err := repos.Swaps.TransitionStatus(swapID, models.SwapStatusPending, models.SwapStatusAccepted); err != nil {
			return mapStatusMismatch(err, ErrInvalidTransition)
		}
		if err := rejectPendingFor(repos, itemIDs, swapID); err != nil {
			return err
		}

		swap.Status = models.SwapStatusAccepted
		accepted = swap
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("swap accepted", zap.String("swap_id", swapID))
	publish(s.logger, s.publisher, events.Event{Type: events.SwapAccepted, SwapID: swapID, ItemID: accepted.ItemID, UserID: actorID})
	return accepted, nil
}

// Reject declines a pending swap.
func (s *SwapService) Reject(swapID, actorID string) (*models.SwapRequest, error) {
	swap, err := s.pendingForOwner(s.repos, swapID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Swaps.TransitionStatus(swapID, models.SwapStatusPending, models.SwapStatusRejected); err != nil {
		return nil, mapStatusMismatch(err, ErrInvalidTransition)
	}
	swap.Status = models.SwapStatusRejected

	s.logger.Info("swap rejected", zap.String("swap_id", swapID))
	publish(s.logger, s.publisher, events.Event{Type: events.SwapRejected, SwapID: swapID, ItemID: swap.ItemID, UserID: actorID})
	return swap, nil
}

// UserSwaps lists requests the user sent or received, newest first.
func (s *SwapService) UserSwaps(userID string) ([]models.SwapRequest, error) {
	return s.repos.Swaps.GetByUser(userID)
}

func (s *SwapService) pendingForOwner(repos repositories.Repositories, swapID, actorID string) (*models.SwapRequest, error) {
	swap, err := repos.Swaps.GetByID(swapID)
	if err != nil {
		return nil, err
	}
	if swap.OwnerID != actorID {
		return nil, fmt.Errorf("only the item owner can answer swap %s: %w", swapID, ErrForbidden)
	}
	if swap.IsTerminal() {
		return nil, fmt.Errorf("swap %s is already %s: %w", swapID, swap.Status, ErrInvalidTransition)
	}
	return swap, nil
}

// rejectPendingFor rejects pending requests referencing any of itemIDs,
// except keepID.
func rejectPendingFor(repos repositories.Repositories, itemIDs []string, keepID string) error {
	for _, id := range itemIDs {
		pending, err := repos.Swaps.GetPendingByItem(id)
		if err != nil {
			return fmt.Errorf("failed to load pending swaps: %w", err)
		}
		for _, p := range pending {
			if p.ID == keepID {
				continue
			}
			err := repos.Swaps.TransitionStatus(p.ID, models.SwapStatusPending, models.SwapStatusRejected)
			if err != nil && !errors.Is(err, repositories.ErrStatusMismatch) {
				return fmt.Errorf("failed to reject swap %s: %w", p.ID, err)
			}
		}
	}
	return nil
}
