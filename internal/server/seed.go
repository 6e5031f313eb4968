package server

import (
	"errors"
	"fmt"

	"rewear/internal/models"
	"rewear/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the login password of every seeded sample account.
const DemoPassword = "rewear-demo"

// SeedSampleData loads the demo accounts and listings. Records that already
// exist are left alone, so seeding is safe on every start.
func SeedSampleData(repos repositories.Repositories, logger *zap.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	for _, u := range models.SampleUsers() {
		if _, err := repos.Users.GetByID(u.ID); err == nil {
			continue
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		u.Password = string(hash)
		if err := repos.Users.Create(&u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.ID, err)
		}
		logger.Info("seeded user", zap.String("user_id", u.ID))
	}

	for _, it := range models.SampleItems() {
		if _, err := repos.Items.GetByID(it.ID); err == nil {
			continue
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		if err := repos.Items.Create(&it); err != nil {
			return fmt.Errorf("failed to seed item %s: %w", it.ID, err)
		}
		logger.Info("seeded item", zap.String("item_id", it.ID))
	}
	return nil
}
