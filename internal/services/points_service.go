package services

import (
	"fmt"

	"rewear/internal/events"
	"rewear/internal/models"
	"rewear/internal/repositories"

	"go.uber.org/zap"
)

// RedemptionCompleted is the status of a finished redemption.
const RedemptionCompleted = "completed"

// PointsService spends balances on available items.
type PointsService struct {
	repos     repositories.Repositories
	tx        repositories.Transactor
	publisher events.Publisher
	logger    *zap.Logger
}

// NewPointsService creates a new PointsService.
func NewPointsService(repos repositories.Repositories, tx repositories.Transactor, publisher events.Publisher, logger *zap.Logger) *PointsService {
	return &PointsService{repos: repos, tx: tx, publisher: publisher, logger: logger}
}

// Redeem buys itemID with userID's points. The debit, the status change,
// the redemption record and the rejection of open swap requests for the
// item commit together.
func (s *PointsService) Redeem(userID, itemID string) (*models.Redemption, error) {
	var red *models.Redemption
	err := s.tx.WithinTransaction(func(repos repositories.Repositories) error {
		item, err := repos.Items.GetByID(itemID)
		if err != nil {
			return err
		}
		if item.UserID == userID {
			return fmt.Errorf("cannot redeem your own item: %w", ErrForbidden)
		}
		if !item.IsAvailable() {
			return fmt.Errorf("item %s is %s: %w", itemID, item.Status, ErrConflict)
		}
		user, err := repos.Users.GetByID(userID)
		if err != nil {
			return err
		}
		if user.Points < item.PointsRequired {
			return fmt.Errorf("balance %d is below price %d: %w", user.Points, item.PointsRequired, repositories.ErrInsufficientPoints)
		}

		if err := repos.Users.AdjustPoints(userID, -item.PointsRequired); err != nil {
			return err
		}
		if err := repos.Items.TransitionStatus(itemID, models.ItemStatusAvailable, models.ItemStatusRedeemed); err != nil {
			return mapStatusMismatch(err, ErrConflict)
		}
		red = &models.Redemption{
			UserID:     userID,
			ItemID:     item.ID,
			ItemTitle:  item.Title,
			PointsUsed: item.PointsRequired,
			Status:     RedemptionCompleted,
		}
		if err := repos.Redemptions.Create(red); err != nil {
			return fmt.Errorf("failed to record redemption: %w", err)
		}
		return rejectPendingFor(repos, []string{itemID}, "")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item redeemed", zap.String("item_id", itemID), zap.String("user_id", userID), zap.Int("points", red.PointsUsed))
	publish(s.logger, s.publisher, events.Event{Type: events.ItemRedeemed, ItemID: itemID, UserID: userID, Points: red.PointsUsed})
	return red, nil
}

// History lists the user's redemptions, newest first.
func (s *PointsService) History(userID string) ([]models.Redemption, error) {
	return s.repos.Redemptions.GetByUser(userID)
}
