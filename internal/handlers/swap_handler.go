package handlers

import (
	"rewear/internal/middleware"
	"rewear/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SwapHandler lets users see and answer their swap requests.
type SwapHandler struct {
	swaps  *services.SwapService
	logger *zap.Logger
}

// NewSwapHandler creates a new SwapHandler.
func NewSwapHandler(swaps *services.SwapService, logger *zap.Logger) *SwapHandler {
	return &SwapHandler{swaps: swaps, logger: logger}
}

// RegisterRoutes registers the swap routes; all require authentication.
func (h *SwapHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	swaps := router.Group("/swaps", requireAuth)
	swaps.Get("/", h.HandleList)
	swaps.Post("/:id/accept", h.HandleAccept)
	swaps.Post("/:id/reject", h.HandleReject)
}

// HandleList returns swaps the caller sent or received.
func (h *SwapHandler) HandleList(c *fiber.Ctx) error {
	swaps, err := h.swaps.UserSwaps(middleware.CurrentActor(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(swaps)
}

// HandleAccept accepts a pending swap on the caller's item.
func (h *SwapHandler) HandleAccept(c *fiber.Ctx) error {
	swap, err := h.swaps.Accept(c.Params("id"), middleware.CurrentActor(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(swap)
}

// HandleReject rejects a pending swap on the caller's item.
func (h *SwapHandler) HandleReject(c *fiber.Ctx) error {
	swap, err := h.swaps.Reject(c.Params("id"), middleware.CurrentActor(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(swap)
}
