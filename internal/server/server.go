// Package server wires repositories, services and handlers into the Fiber
// application.
package server

import (
	"fmt"
	"time"

	"rewear/internal/config"
	"rewear/internal/events"
	"rewear/internal/handlers"
	"rewear/internal/imaging"
	"rewear/internal/middleware"
	"rewear/internal/repositories"
	"rewear/internal/services"
	"rewear/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New builds the HTTP application on db. publisher receives domain events;
// pass events.NopPublisher{} when no broker is configured.
func New(cfg *config.Config, db *gorm.DB, publisher events.Publisher, logger *zap.Logger) (*fiber.App, error) {
	images, err := storage.NewLocalImageStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	repos := repositories.NewGORMRepositories(db)
	tx := repositories.NewGORMTransactor(db)

	authService := services.NewAuthService(repos.Users, cfg.JWTSecret, cfg.JWTTTL, logger)
	itemService := services.NewItemService(repos.Items, repos.Users, tx, images, publisher, logger)
	swapService := services.NewSwapService(repos, tx, publisher, logger)
	pointsService := services.NewPointsService(repos, tx, publisher, logger)
	profileService := services.NewProfileService(repos)
	moderationService := services.NewModerationService(repos, tx, images, cfg.ListingRewardPoints, publisher, logger)

	validate, err := handlers.NewValidator()
	if err != nil {
		return nil, err
	}
	requireAuth := middleware.AuthRequired(authService, logger)

	app := fiber.New(fiber.Config{
		AppName:   "rewear",
		BodyLimit: imaging.MaxUploadBytes + 1<<20,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	app.Static(storage.PublicPrefix, images.Dir())
	app.Get("/health", healthHandler(db))

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService, validate, logger).RegisterRoutes(apiV1)
	handlers.NewCatalogHandler().RegisterRoutes(apiV1)
	handlers.NewItemHandler(itemService, swapService, pointsService, validate, logger).RegisterRoutes(apiV1, requireAuth)
	handlers.NewSwapHandler(swapService, logger).RegisterRoutes(apiV1, requireAuth)
	handlers.NewProfileHandler(profileService, itemService, pointsService, validate, logger).RegisterRoutes(apiV1, requireAuth)
	handlers.NewAdminHandler(moderationService, validate, logger).RegisterRoutes(apiV1, requireAuth, middleware.AdminRequired())

	return app, nil
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, health, dbState := fiber.StatusOK, "healthy", "up"
		if err := ping(db); err != nil {
			code, health, dbState = fiber.StatusServiceUnavailable, "degraded", "down"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   health,
			"database": dbState,
			"time":     time.Now().Format(time.RFC3339),
		})
	}
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Ping()
}
