package services_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"rewear/internal/discovery"
	"rewear/internal/events"
	"rewear/internal/models"
	"rewear/internal/repositories"
	"rewear/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validListing() services.NewItem {
	return services.NewItem{
		Title:          " Denim Jacket ",
		Description:    "Classic fit",
		Category:       "Outerwear",
		Type:           "Jacket",
		Size:           "M",
		Condition:      "Good",
		Tags:           []string{"Denim", "denim", " vintage ", ""},
		PointsRequired: 50,
	}
}

func pngBytes(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	img.Set(1, 1, color.RGBA{0, 0, 255, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateListing(t *testing.T) {
	assert.NoError(t, services.ValidateListing(validListing()))

	tests := []struct {
		name   string
		mutate func(*services.NewItem)
	}{
		{"missing title", func(n *services.NewItem) { n.Title = "  " }},
		{"unknown category", func(n *services.NewItem) { n.Category = "Costumes" }},
		{"type outside category", func(n *services.NewItem) { n.Type = "Sneakers" }},
		{"unknown size", func(n *services.NewItem) { n.Size = "XXXL" }},
		{"shoe size outside footwear", func(n *services.NewItem) { n.Size = "9" }},
		{"unknown condition", func(n *services.NewItem) { n.Condition = "Worn" }},
		{"points below minimum", func(n *services.NewItem) { n.PointsRequired = models.MinPointsRequired - 1 }},
		{"points above maximum", func(n *services.NewItem) { n.PointsRequired = models.MaxPointsRequired + 1 }},
		{"too many images", func(n *services.NewItem) { n.Images = make([]string, services.MaxImagesPerItem+1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validListing()
			tt.mutate(&in)
			assert.ErrorIs(t, services.ValidateListing(in), services.ErrValidation)
		})
	}

	footwear := validListing()
	footwear.Category, footwear.Type, footwear.Size = "Footwear", "Sneakers", "9"
	assert.NoError(t, services.ValidateListing(footwear))
}

func TestItemService_CreateItem(t *testing.T) {
	items := new(MockItemRepository)
	users := new(MockUserRepository)
	pub := new(MockPublisher)
	svc := services.NewItemService(items, users, nil, newMemoryImageStore(), pub, zap.NewNop())

	owner := &models.User{ID: "u1", DisplayName: "Sarah M.", Email: "sarah@example.com", Location: "Portland"}
	users.On("GetByID", "u1").Return(owner, nil).Once()
	items.On("Create", mock.AnythingOfType("*models.Item")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Item).ID = "item-1"
	}).Return(nil).Once()
	pub.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.ItemCreated && e.ItemID == "item-1" && e.UserID == "u1"
	})).Return(nil).Once()

	item, err := svc.CreateItem("u1", validListing())
	require.NoError(t, err)
	assert.Equal(t, "Denim Jacket", item.Title)
	assert.Equal(t, models.ItemStatusPendingApproval, item.Status)
	assert.Equal(t, "Sarah M.", item.UploaderName)
	assert.Equal(t, "sarah@example.com", item.UploaderEmail)
	assert.Equal(t, "Portland", item.Location)
	assert.Equal(t, []string{"denim", "vintage"}, []string(item.Tags))

	items.AssertExpectations(t)
	users.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestItemService_CreateItem_InvalidSkipsRepository(t *testing.T) {
	items := new(MockItemRepository)
	users := new(MockUserRepository)
	svc := services.NewItemService(items, users, nil, newMemoryImageStore(), events.NopPublisher{}, zap.NewNop())

	in := validListing()
	in.Category = "Costumes"
	_, err := svc.CreateItem("u1", in)
	assert.ErrorIs(t, err, services.ErrValidation)
	items.AssertNotCalled(t, "Create", mock.Anything)
	users.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestItemService_CreateItem_PublishFailureIsNotFatal(t *testing.T) {
	items := new(MockItemRepository)
	users := new(MockUserRepository)
	pub := new(MockPublisher)
	svc := services.NewItemService(items, users, nil, newMemoryImageStore(), pub, zap.NewNop())

	users.On("GetByID", "u1").Return(&models.User{ID: "u1"}, nil)
	items.On("Create", mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything).Return(assert.AnError)

	_, err := svc.CreateItem("u1", validListing())
	assert.NoError(t, err)
}

func TestItemService_Browse(t *testing.T) {
	items := new(MockItemRepository)
	svc := services.NewItemService(items, new(MockUserRepository), nil, nil, events.NopPublisher{}, zap.NewNop())

	items.On("GetByStatus", models.ItemStatusAvailable).Return(models.SampleItems(), nil).Once()

	res, err := svc.Browse(services.BrowseQuery{
		Criteria: discovery.Criteria{Category: "Dresses"},
		Sort:     discovery.SortPointsLow,
		Page:     1,
		PageSize: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Casual Summer Dress", res.Items[0].Title)
	assert.Equal(t, "Bohemian Maxi Dress", res.Items[1].Title)
	items.AssertExpectations(t)
}

func TestItemService_UpdateItem(t *testing.T) {
	items := new(MockItemRepository)
	svc := services.NewItemService(items, new(MockUserRepository), nil, nil, events.NopPublisher{}, zap.NewNop())

	existing := &models.Item{ID: "i1", UserID: "owner", Title: "Old", Status: models.ItemStatusAvailable}
	items.On("GetByID", "i1").Return(existing, nil)
	items.On("Update", mock.AnythingOfType("*models.Item")).Return(nil).Once()

	title := "New title"
	updated, err := svc.UpdateItem(services.Actor{ID: "owner"}, "i1", services.ItemUpdate{Title: &title, Tags: []string{"Wool"}})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, []string{"wool"}, []string(updated.Tags))

	_, err = svc.UpdateItem(services.Actor{ID: "intruder"}, "i1", services.ItemUpdate{Title: &title})
	assert.ErrorIs(t, err, services.ErrForbidden)

	empty := " "
	_, err = svc.UpdateItem(services.Actor{ID: "owner"}, "i1", services.ItemUpdate{Title: &empty})
	assert.ErrorIs(t, err, services.ErrValidation)
	items.AssertNumberOfCalls(t, "Update", 1)
}

func TestItemService_UpdateItem_OutOfCirculation(t *testing.T) {
	items := new(MockItemRepository)
	svc := services.NewItemService(items, new(MockUserRepository), nil, nil, events.NopPublisher{}, zap.NewNop())

	items.On("GetByID", "i1").Return(&models.Item{ID: "i1", UserID: "owner", Status: models.ItemStatusSwapped}, nil)
	title := "x"
	_, err := svc.UpdateItem(services.Actor{ID: "owner"}, "i1", services.ItemUpdate{Title: &title})
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestItemService_DeleteItem(t *testing.T) {
	repos := repositories.NewMockRepositories()
	store := newMemoryImageStore()
	svc := services.NewItemService(repos.Items, repos.Users, repositories.NewMockTransactor(repos), store, events.NopPublisher{}, zap.NewNop())

	url, _ := store.Save([]byte("img"), "jpg")
	require.NoError(t, repos.Items.Create(&models.Item{ID: "i1", UserID: "owner", Images: []string{url}}))
	require.NoError(t, repos.Items.Create(&models.Item{ID: "i2", UserID: "owner"}))

	assert.ErrorIs(t, svc.DeleteItem(services.Actor{ID: "other", Role: models.RoleUser}, "i1"), services.ErrForbidden)

	require.NoError(t, svc.DeleteItem(services.Actor{ID: "owner"}, "i1"))
	assert.Equal(t, 0, store.count())
	_, err := repos.Items.GetByID("i1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, svc.DeleteItem(services.Actor{ID: "admin", Role: models.RoleAdmin}, "i2"))
	assert.ErrorIs(t, svc.DeleteItem(services.Actor{ID: "owner"}, "missing"), repositories.ErrNotFound)
}

func TestItemService_DeleteItem_RejectsPendingSwaps(t *testing.T) {
	m := newMarketplace()
	m.addItem("a1", "alice", models.ItemStatusAvailable, 30)
	m.addItem("b1", "bob", models.ItemStatusAvailable, 30)
	m.addItem("b2", "bob", models.ItemStatusAvailable, 30)
	requested := &models.SwapRequest{RequesterID: "bob", ItemID: "a1", OfferedItemID: "b1", OwnerID: "alice", Status: models.SwapStatusPending}
	offered := &models.SwapRequest{RequesterID: "alice", ItemID: "b2", OfferedItemID: "a1", OwnerID: "bob", Status: models.SwapStatusPending}
	unrelated := &models.SwapRequest{RequesterID: "alice", ItemID: "b1", OwnerID: "bob", Status: models.SwapStatusPending}
	for _, sw := range []*models.SwapRequest{requested, offered, unrelated} {
		require.NoError(t, m.repos.Swaps.Create(sw))
	}
	svc := services.NewItemService(m.repos.Items, m.repos.Users, m.tx, nil, events.NopPublisher{}, zap.NewNop())

	require.NoError(t, svc.DeleteItem(services.Actor{ID: "alice"}, "a1"))

	for id, want := range map[string]string{
		requested.ID: models.SwapStatusRejected,
		offered.ID:   models.SwapStatusRejected,
		unrelated.ID: models.SwapStatusPending,
	} {
		sw, err := m.repos.Swaps.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, want, sw.Status, id)
	}

	dash, err := services.NewProfileService(m.repos).Dashboard("bob")
	require.NoError(t, err)
	assert.Equal(t, 1, dash.ActiveSwaps)
}

// interleavedItems runs between once, right after the first GetByID, so a
// second writer can commit inside a read-modify-write.
type interleavedItems struct {
	repositories.ItemRepository
	between func()
	once    sync.Once
}

func (r *interleavedItems) GetByID(id string) (*models.Item, error) {
	item, err := r.ItemRepository.GetByID(id)
	r.once.Do(r.between)
	return item, err
}

func TestItemService_UpdateItem_DoesNotUndoRedemption(t *testing.T) {
	m := newMarketplace()
	m.addItem("a1", "alice", models.ItemStatusAvailable, 30)
	points := services.NewPointsService(m.repos, m.tx, events.NopPublisher{}, zap.NewNop())
	items := &interleavedItems{ItemRepository: m.repos.Items, between: func() {
		_, err := points.Redeem("bob", "a1")
		require.NoError(t, err)
	}}
	svc := services.NewItemService(items, m.repos.Users, m.tx, nil, events.NopPublisher{}, zap.NewNop())

	title := "Edited"
	_, err := svc.UpdateItem(services.Actor{ID: "alice"}, "a1", services.ItemUpdate{Title: &title})
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Equal(t, models.ItemStatusRedeemed, m.status("a1"))
	assert.Equal(t, 70, m.points("bob"))

	_, err = points.Redeem("bob", "a1")
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Equal(t, 70, m.points("bob"))
}

func TestItemService_AddImage_DoesNotUndoApproval(t *testing.T) {
	m := newMarketplace()
	m.addItem("p1", "alice", models.ItemStatusPendingApproval, 30)
	store := newMemoryImageStore()
	moderation := services.NewModerationService(m.repos, m.tx, nil, 10, events.NopPublisher{}, zap.NewNop())
	items := &interleavedItems{ItemRepository: m.repos.Items, between: func() {
		_, err := moderation.Approve("p1")
		require.NoError(t, err)
	}}
	svc := services.NewItemService(items, m.repos.Users, m.tx, store, events.NopPublisher{}, zap.NewNop())

	_, err := svc.AddImage(services.Actor{ID: "alice"}, "p1", bytes.NewReader(pngBytes(t)))
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Equal(t, models.ItemStatusAvailable, m.status("p1"))
	assert.Equal(t, 110, m.points("alice"))
	assert.Equal(t, 0, store.count())
}

func TestItemService_AddImage(t *testing.T) {
	repos := repositories.NewMockRepositories()
	store := newMemoryImageStore()
	svc := services.NewItemService(repos.Items, repos.Users, repositories.NewMockTransactor(repos), store, events.NopPublisher{}, zap.NewNop())
	require.NoError(t, repos.Items.Create(&models.Item{ID: "i1", UserID: "owner", Status: models.ItemStatusPendingApproval}))

	item, err := svc.AddImage(services.Actor{ID: "owner"}, "i1", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	require.Len(t, item.Images, 1)
	assert.Equal(t, "/uploads/img-1.jpg", item.PrimaryImage())

	stored, err := repos.Items.GetByID("i1")
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/img-1.jpg"}, []string(stored.Images))

	_, err = svc.AddImage(services.Actor{ID: "owner"}, "i1", bytes.NewReader([]byte("not an image")))
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = svc.AddImage(services.Actor{ID: "other"}, "i1", bytes.NewReader(pngBytes(t)))
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Equal(t, 1, store.count())
}
