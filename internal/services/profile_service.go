package services

import (
	"fmt"
	"strings"

	"rewear/internal/models"
	"rewear/internal/repositories"
)

// ProfileUpdate carries the editable profile fields. Nil fields are kept.
type ProfileUpdate struct {
	DisplayName *string
	Location    *string
	Bio         *string
}

// Dashboard is the signed-in user's overview.
type Dashboard struct {
	User           models.User          `json:"user"`
	Items          []models.Item        `json:"items"`
	Swaps          []models.SwapRequest `json:"swaps"`
	Redemptions    []models.Redemption  `json:"redemptions"`
	ActiveSwaps    int                  `json:"active_swaps"`
	CompletedSwaps int                  `json:"completed_swaps"`
	Points         int                  `json:"points"`
}

// ProfileService reads and edits the caller's own account.
type ProfileService struct {
	repos repositories.Repositories
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repos repositories.Repositories) *ProfileService {
	return &ProfileService{repos: repos}
}

// Get returns the account.
func (s *ProfileService) Get(userID string) (*models.User, error) {
	return s.repos.Users.GetByID(userID)
}

// Update edits display name, location and bio.
func (s *ProfileService) Update(userID string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.repos.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if upd.DisplayName != nil {
		name := strings.TrimSpace(*upd.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name must not be empty", ErrValidation)
		}
		user.DisplayName = name
	}
	if upd.Location != nil {
		user.Location = strings.TrimSpace(*upd.Location)
	}
	if upd.Bio != nil {
		user.Bio = strings.TrimSpace(*upd.Bio)
	}
	if err := s.repos.Users.UpdateProfile(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// Dashboard gathers the account, its listings, swaps and redemptions.
// Active swaps are pending ones; completed swaps are accepted ones.
func (s *ProfileService) Dashboard(userID string) (*Dashboard, error) {
	user, err := s.repos.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.Items.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	swaps, err := s.repos.Swaps.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load swaps: %w", err)
	}
	redemptions, err := s.repos.Redemptions.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load redemptions: %w", err)
	}

	d := &Dashboard{
		User:        *user,
		Items:       items,
		Swaps:       swaps,
		Redemptions: redemptions,
		Points:      user.Points,
	}
	for _, sw := range swaps {
		switch sw.Status {
		case models.SwapStatusPending:
			d.ActiveSwaps++
		case models.SwapStatusAccepted:
			d.CompletedSwaps++
		}
	}
	return d, nil
}
