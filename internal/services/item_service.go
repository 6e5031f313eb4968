package services

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"rewear/internal/discovery"
	"rewear/internal/events"
	"rewear/internal/imaging"
	"rewear/internal/models"
	"rewear/internal/repositories"
	"rewear/internal/storage"

	"go.uber.org/zap"
)

// MaxImagesPerItem bounds the photo gallery of one listing.
const MaxImagesPerItem = 5

// MaxTitleLength is the longest accepted item title, in characters.
const MaxTitleLength = 100

// NewItem carries the fields a user supplies when listing an item.
type NewItem struct {
	Title          string
	Description    string
	Category       string
	Type           string
	Size           string
	Condition      string
	Tags           []string
	Images         []string
	PointsRequired int
	Location       string
}

// ItemUpdate carries the descriptive fields an owner may change. Nil fields
// are left untouched.
type ItemUpdate struct {
	Title       *string
	Description *string
	Tags        []string
	Location    *string
}

// BrowseQuery is one discovery request over the available catalog.
type BrowseQuery struct {
	Criteria discovery.Criteria
	Sort     discovery.SortMode
	Page     int
	PageSize int
}

// ItemService handles listing, browsing and editing items.
type ItemService struct {
	items     repositories.ItemRepository
	users     repositories.UserRepository
	tx        repositories.Transactor
	images    storage.ImageStore
	publisher events.Publisher
	logger    *zap.Logger
}

// NewItemService creates a new ItemService. tx is used when deleting an
// item together with the swap requests that reference it.
func NewItemService(items repositories.ItemRepository, users repositories.UserRepository, tx repositories.Transactor, images storage.ImageStore, publisher events.Publisher, logger *zap.Logger) *ItemService {
	return &ItemService{
		items:     items,
		users:     users,
		tx:        tx,
		images:    images,
		publisher: publisher,
		logger:    logger,
	}
}

// ValidateListing checks catalog membership and price bounds.
func ValidateListing(in NewItem) error {
	var problems []string
	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		problems = append(problems, "title is required")
	case utf8.RuneCountInString(title) > MaxTitleLength:
		problems = append(problems, fmt.Sprintf("title exceeds %d characters", MaxTitleLength))
	}
	if !models.IsValidCategory(in.Category) {
		problems = append(problems, fmt.Sprintf("unknown category %q", in.Category))
	} else if !models.IsValidType(in.Category, in.Type) {
		problems = append(problems, fmt.Sprintf("type %q is not part of %s", in.Type, in.Category))
	}
	if !models.IsValidSize(in.Category, in.Size) {
		problems = append(problems, fmt.Sprintf("unknown size %q", in.Size))
	}
	if !models.IsValidCondition(in.Condition) {
		problems = append(problems, fmt.Sprintf("unknown condition %q", in.Condition))
	}
	if in.PointsRequired < models.MinPointsRequired || in.PointsRequired > models.MaxPointsRequired {
		problems = append(problems, fmt.Sprintf("points must be between %d and %d", models.MinPointsRequired, models.MaxPointsRequired))
	}
	if len(in.Images) > MaxImagesPerItem {
		problems = append(problems, fmt.Sprintf("at most %d images per item", MaxImagesPerItem))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// CreateItem lists a new item for ownerID. The item starts in moderation
// and carries the owner's display name and email.
func (s *ItemService) CreateItem(ownerID string, in NewItem) (*models.Item, error) {
	if err := ValidateListing(in); err != nil {
		return nil, err
	}
	owner, err := s.users.GetByID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}

	item := &models.Item{
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Category:       in.Category,
		Type:           in.Type,
		Size:           in.Size,
		Condition:      in.Condition,
		Tags:           cleanTags(in.Tags),
		Images:         append([]string{}, in.Images...),
		PointsRequired: in.PointsRequired,
		UserID:         owner.ID,
		UploaderName:   owner.DisplayName,
		UploaderEmail:  owner.Email,
		Status:         models.ItemStatusPendingApproval,
		Location:       strings.TrimSpace(in.Location),
	}
	if item.Location == "" {
		item.Location = owner.Location
	}
	if err := s.items.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("item listed", zap.String("item_id", item.ID), zap.String("user_id", owner.ID))
	publish(s.logger, s.publisher, events.Event{Type: events.ItemCreated, ItemID: item.ID, UserID: owner.ID, Points: item.PointsRequired})
	return item, nil
}

// GetItem returns one item by ID.
func (s *ItemService) GetItem(id string) (*models.Item, error) {
	return s.items.GetByID(id)
}

// Browse runs discovery over the currently available items.
func (s *ItemService) Browse(q BrowseQuery) (discovery.Result, error) {
	available, err := s.items.GetByStatus(models.ItemStatusAvailable)
	if err != nil {
		return discovery.Result{}, fmt.Errorf("failed to load available items: %w", err)
	}
	return discovery.Discover(available, q.Criteria, q.Sort, q.Page, q.PageSize), nil
}

// GetUserItems returns every item listed by userID, whatever its status.
func (s *ItemService) GetUserItems(userID string) ([]models.Item, error) {
	return s.items.GetByUser(userID)
}

// UpdateItem applies descriptive changes. Only the owner may edit, and only
// while the item is still in circulation.
func (s *ItemService) UpdateItem(actor Actor, id string, upd ItemUpdate) (*models.Item, error) {
	item, err := s.ownedItem(actor, id)
	if err != nil {
		return nil, err
	}
	if item.Status == models.ItemStatusRedeemed || item.Status == models.ItemStatusSwapped {
		return nil, fmt.Errorf("item %s is %s: %w", id, item.Status, ErrInvalidTransition)
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
			return nil, fmt.Errorf("%w: title must be 1 to %d characters", ErrValidation, MaxTitleLength)
		}
		item.Title = title
	}
	if upd.Description != nil {
		item.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Tags != nil {
		item.Tags = cleanTags(upd.Tags)
	}
	if upd.Location != nil {
		item.Location = strings.TrimSpace(*upd.Location)
	}

	if err := s.items.Update(item); err != nil {
		return nil, mapStatusMismatch(fmt.Errorf("failed to update item: %w", err), ErrConflict)
	}
	return item, nil
}

// DeleteItem removes an item. Owners and admins may delete. Pending swap
// requests that reference the item are rejected in the same transaction.
func (s *ItemService) DeleteItem(actor Actor, id string) error {
	var deleted *models.Item
	err := s.tx.WithinTransaction(func(repos repositories.Repositories) error {
		item, err := repos.Items.GetByID(id)
		if err != nil {
			return err
		}
		if item.UserID != actor.ID && !actor.IsAdmin() {
			return fmt.Errorf("item %s belongs to another user: %w", id, ErrForbidden)
		}
		if err := rejectPendingFor(repos, []string{id}, ""); err != nil {
			return err
		}
		if err := repos.Items.Delete(id); err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		deleted = item
		return nil
	})
	if err != nil {
		return err
	}

	s.removeImages(deleted.Images)
	s.logger.Info("item deleted", zap.String("item_id", id), zap.String("by", actor.ID))
	return nil
}

// AddImage processes an uploaded photo, stores it and appends its URL to
// the item's gallery.
func (s *ItemService) AddImage(actor Actor, id string, r io.Reader) (*models.Item, error) {
	item, err := s.ownedItem(actor, id)
	if err != nil {
		return nil, err
	}
	if len(item.Images) >= MaxImagesPerItem {
		return nil, fmt.Errorf("%w: at most %d images per item", ErrValidation, MaxImagesPerItem)
	}

	processed, err := imaging.Process(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	url, err := s.images.Save(processed.Data, "jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	item.Images = append(item.Images, url)
	if err := s.items.Update(item); err != nil {
		s.removeImages([]string{url})
		return nil, mapStatusMismatch(fmt.Errorf("failed to attach image: %w", err), ErrConflict)
	}
	return item, nil
}

func (s *ItemService) ownedItem(actor Actor, id string) (*models.Item, error) {
	item, err := s.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item.UserID != actor.ID {
		return nil, fmt.Errorf("item %s belongs to another user: %w", id, ErrForbidden)
	}
	return item, nil
}

func (s *ItemService) removeImages(urls []string) {
	removeImages(s.logger, s.images, urls)
}

// removeImages deletes stored files, logging failures.
func removeImages(logger *zap.Logger, store storage.ImageStore, urls []string) {
	if store == nil {
		return
	}
	for _, url := range urls {
		if err := store.Remove(url); err != nil {
			logger.Warn("failed to remove image", zap.String("url", url), zap.Error(err))
		}
	}
}

// cleanTags trims, lowercases and de-duplicates tags, dropping empties.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
