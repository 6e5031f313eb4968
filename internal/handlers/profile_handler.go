package handlers

import (
	"rewear/internal/middleware"
	"rewear/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProfileHandler serves the caller's own account.
type ProfileHandler struct {
	profiles *services.ProfileService
	items    *services.ItemService
	points   *services.PointsService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *services.ProfileService, items *services.ItemService, points *services.PointsService, validate *validator.Validate, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, items: items, points: points, validate: validate, logger: logger}
}

// RegisterRoutes registers the /me routes; all require authentication.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	me := router.Group("/me", requireAuth)
	me.Get("/", h.HandleGet)
	me.Put("/", h.HandleUpdate)
	me.Get("/dashboard", h.HandleDashboard)
	me.Get("/items", h.HandleItems)
	me.Get("/redemptions", h.HandleRedemptions)
}

// HandleGet returns the caller's account.
func (h *ProfileHandler) HandleGet(c *fiber.Ctx) error {
	user, err := h.profiles.Get(middleware.CurrentActor(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(user)
}

// UpdateProfileRequest is the body of PUT /me. Omitted fields are kept.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=100"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	Bio         *string `json:"bio" validate:"omitempty,max=1000"`
}

// HandleUpdate edits the caller's profile.
func (h *ProfileHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.profiles.Update(middleware.CurrentActor(c).ID, services.ProfileUpdate{
		DisplayName: req.DisplayName,
		Location:    req.Location,
		Bio:         req.Bio,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(user)
}

// HandleDashboard returns the caller's overview.
func (h *ProfileHandler) HandleDashboard(c *fiber.Ctx) error {
	d, err := h.profiles.Dashboard(middleware.CurrentActor(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(d)
}

// HandleItems returns every item the caller listed, whatever its status.
func (h *ProfileHandler) HandleItems(c *fiber.Ctx) error {
	items, err := h.items.GetUserItems(middleware.CurrentActor(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(items)
}

// HandleRedemptions returns the caller's redemption history.
func (h *ProfileHandler) HandleRedemptions(c *fiber.Ctx) error {
	history, err := h.points.History(middleware.CurrentActor(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(history)
}
