package handlers

import (
	"rewear/internal/discovery"
	"rewear/internal/middleware"
	"rewear/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MaxPageSize caps the page_size browse parameter.
const MaxPageSize = 100

// ItemHandler serves browsing, listing and trading items.
type ItemHandler struct {
	items    *services.ItemService
	swaps    *services.SwapService
	points   *services.PointsService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items *services.ItemService, swaps *services.SwapService, points *services.PointsService, validate *validator.Validate, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		items:    items,
		swaps:    swaps,
		points:   points,
		validate: validate,
		logger:   logger,
	}
}

// RegisterRoutes registers the item routes. Browsing and item detail are
// public; everything else runs behind requireAuth.
func (h *ItemHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	items := router.Group("/items")
	items.Get("/", h.HandleBrowse)
	items.Get("/:id", h.HandleGet)
	items.Post("/", requireAuth, h.HandleCreate)
	items.Put("/:id", requireAuth, h.HandleUpdate)
	items.Delete("/:id", requireAuth, h.HandleDelete)
	items.Post("/:id/images", requireAuth, h.HandleUploadImage)
	items.Post("/:id/redeem", requireAuth, h.HandleRedeem)
	items.Post("/:id/swaps", requireAuth, h.HandleRequestSwap)
}

// BrowseParams are the query parameters of GET /items. Out-of-range values
// are not errors: they narrow or widen the match like any other criteria.
type BrowseParams struct {
	Q         string `query:"q"`
	Category  string `query:"category"`
	Size      string `query:"size"`
	Condition string `query:"condition"`
	MinPoints *int   `query:"min_points"`
	MaxPoints *int   `query:"max_points"`
	Sort      string `query:"sort"`
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
}

// Query converts the parameters to a normalised browse query.
func (p BrowseParams) Query() services.BrowseQuery {
	page := max(p.Page, 1)
	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = discovery.DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)
	sort := discovery.SortMode(p.Sort)
	if sort == "" {
		sort = discovery.SortNewest
	}
	return services.BrowseQuery{
		Criteria: discovery.Criteria{
			Text:      p.Q,
			Category:  p.Category,
			Size:      p.Size,
			Condition: p.Condition,
			MinPoints: p.MinPoints,
			MaxPoints: p.MaxPoints,
		},
		Sort:     sort,
		Page:     page,
		PageSize: pageSize,
	}
}

// HandleBrowse runs discovery over available items.
func (h *ItemHandler) HandleBrowse(c *fiber.Ctx) error {
	var params BrowseParams
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
			"error":   err.Error(),
		})
	}
	q := params.Query()
	res, err := h.items.Browse(q)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"items":       res.Items,
		"total":       res.Total,
		"page":        q.Page,
		"page_size":   q.PageSize,
		"total_pages": discovery.PageCount(res.Total, q.PageSize),
	})
}

// HandleGet returns one item.
func (h *ItemHandler) HandleGet(c *fiber.Ctx) error {
	item, err := h.items.GetItem(c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(item)
}

// CreateItemRequest is the body of POST /items.
type CreateItemRequest struct {
	Title          string   `json:"title" validate:"required,max=100"`
	Description    string   `json:"description" validate:"max=2000"`
	Category       string   `json:"category" validate:"required,category"`
	Type           string   `json:"type" validate:"required"`
	Size           string   `json:"size" validate:"required,size"`
	Condition      string   `json:"condition" validate:"required,condition"`
	Tags           []string `json:"tags" validate:"max=10,dive,max=30"`
	Images         []string `json:"images" validate:"max=5,dive,required"`
	PointsRequired int      `json:"points_required" validate:"required,min=10,max=200"`
	Location       string   `json:"location" validate:"max=100"`
}

// HandleCreate lists a new item for the caller.
func (h *ItemHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	item, err := h.items.CreateItem(middleware.CurrentActor(c).ID, services.NewItem{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Type:           req.Type,
		Size:           req.Size,
		Condition:      req.Condition,
		Tags:           req.Tags,
		Images:         req.Images,
		PointsRequired: req.PointsRequired,
		Location:       req.Location,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItemRequest is the body of PUT /items/:id. Omitted fields are kept.
type UpdateItemRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
	Location    *string  `json:"location" validate:"omitempty,max=100"`
}

// HandleUpdate edits the descriptive fields of the caller's item.
func (h *ItemHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	item, err := h.items.UpdateItem(middleware.CurrentActor(c), c.Params("id"), services.ItemUpdate{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Location:    req.Location,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(item)
}

// HandleDelete removes an item. Owners and admins only.
func (h *ItemHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.items.DeleteItem(middleware.CurrentActor(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}

// HandleUploadImage accepts a multipart "image" file for the caller's item.
func (h *ItemHandler) HandleUploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Multipart field 'image' is required",
			"error":   err.Error(),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	defer f.Close()

	item, err := h.items.AddImage(middleware.CurrentActor(c), c.Params("id"), f)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleRedeem buys the item with the caller's points.
func (h *ItemHandler) HandleRedeem(c *fiber.Ctx) error {
	red, err := h.points.Redeem(middleware.CurrentActor(c).ID, c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Item redeemed",
		"redemption": red,
	})
}

// SwapRequestBody is the body of POST /items/:id/swaps.
type SwapRequestBody struct {
	OfferedItemID string `json:"offered_item_id"`
	Message       string `json:"message" validate:"max=500"`
}

// HandleRequestSwap asks the item's owner for a swap.
func (h *ItemHandler) HandleRequestSwap(c *fiber.Ctx) error {
	var req SwapRequestBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c, err)
		}
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	swap, err := h.swaps.RequestSwap(middleware.CurrentActor(c).ID, c.Params("id"), req.OfferedItemID, req.Message)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(swap)
}
