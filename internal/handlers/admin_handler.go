package handlers

import (
	"rewear/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler serves the moderation panel.
type AdminHandler struct {
	moderation *services.ModerationService
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(moderation *services.ModerationService, validate *validator.Validate, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{moderation: moderation, validate: validate, logger: logger}
}

// RegisterRoutes registers the /admin routes behind the given guards.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	admin := router.Group("/admin", guards...)
	admin.Get("/items/pending", h.HandlePending)
	admin.Post("/items/:id/approve", h.HandleApprove)
	admin.Post("/items/:id/reject", h.HandleReject)
	admin.Get("/users", h.HandleUsers)
	admin.Patch("/users/:id/role", h.HandleSetRole)
	admin.Get("/swaps", h.HandleSwaps)
	admin.Get("/stats", h.HandleStats)
}

// HandlePending returns the moderation queue.
func (h *AdminHandler) HandlePending(c *fiber.Ctx) error {
	items, err := h.moderation.PendingItems()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(items)
}

// HandleApprove makes a pending item available.
func (h *AdminHandler) HandleApprove(c *fiber.Ctx) error {
	item, err := h.moderation.Approve(c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(item)
}

// HandleReject removes a pending item.
func (h *AdminHandler) HandleReject(c *fiber.Ctx) error {
	if err := h.moderation.Reject(c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Item rejected"})
}

// HandleUsers lists accounts.
func (h *AdminHandler) HandleUsers(c *fiber.Ctx) error {
	users, err := h.moderation.Users()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(users)
}

// RoleRequest is the body of PATCH /admin/users/:id/role.
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// HandleSetRole changes an account's role.
func (h *AdminHandler) HandleSetRole(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.moderation.SetRole(c.Params("id"), req.Role); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Role updated", "role": req.Role})
}

// HandleSwaps lists every swap request.
func (h *AdminHandler) HandleSwaps(c *fiber.Ctx) error {
	swaps, err := h.moderation.Swaps()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(swaps)
}

// HandleStats returns marketplace totals.
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	st, err := h.moderation.Stats()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(st)
}
