package handlers

import (
	"rewear/internal/discovery"
	"rewear/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler publishes the fixed vocabularies the client builds its
// forms and filters from.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// RegisterRoutes registers GET /catalog.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/catalog", h.HandleCatalog)
}

// HandleCatalog returns categories, sizes, conditions, types and bounds.
func (h *CatalogHandler) HandleCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories":  models.Categories,
		"sizes":       models.Sizes,
		"shoe_sizes":  models.ShoeSizes,
		"conditions":  models.Conditions,
		"types":       models.ItemTypes,
		"sort_modes":  []discovery.SortMode{discovery.SortNewest, discovery.SortOldest, discovery.SortPointsLow, discovery.SortPointsHigh, discovery.SortName},
		"min_points":  models.MinPointsRequired,
		"max_points":  models.MaxPointsRequired,
		"page_size":   discovery.DefaultPageSize,
		"start_bonus": models.StartingPoints,
	})
}
