package services_test

import (
	"testing"

	"rewear/internal/events"
	"rewear/internal/models"
	"rewear/internal/repositories"
	"rewear/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestModerationService_Approve(t *testing.T) {
	m := newMarketplace()
	m.addItem("p1", "alice", models.ItemStatusPendingApproval, 30)
	pub := new(MockPublisher)
	pub.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.ItemApproved && e.ItemID == "p1" && e.UserID == "alice" && e.Points == 10
	})).Return(nil).Once()
	svc := services.NewModerationService(m.repos, m.tx, nil, 10, pub, zap.NewNop())

	pending, err := svc.PendingItems()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	item, err := svc.Approve("p1")
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusAvailable, item.Status)
	assert.Equal(t, models.ItemStatusAvailable, m.status("p1"))
	assert.Equal(t, 110, m.points("alice"))
	pub.AssertExpectations(t)

	_, err = svc.Approve("p1")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	assert.Equal(t, 110, m.points("alice"))

	_, err = svc.Approve("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestModerationService_ApproveRequiresImage(t *testing.T) {
	m := newMarketplace()
	require.NoError(t, m.repos.Items.Create(&models.Item{ID: "bare", UserID: "alice", Status: models.ItemStatusPendingApproval}))
	svc := services.NewModerationService(m.repos, m.tx, nil, 10, events.NopPublisher{}, zap.NewNop())

	_, err := svc.Approve("bare")
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, models.ItemStatusPendingApproval, m.status("bare"))
	assert.Equal(t, 100, m.points("alice"))
}

func TestModerationService_Reject(t *testing.T) {
	m := newMarketplace()
	m.addItem("p1", "alice", models.ItemStatusPendingApproval, 30)
	m.addItem("a1", "alice", models.ItemStatusAvailable, 30)
	store := newMemoryImageStore()
	store.files["/uploads/p1.jpg"] = []byte("photo")
	store.files["/uploads/a1.jpg"] = []byte("photo")
	svc := services.NewModerationService(m.repos, m.tx, store, 10, events.NopPublisher{}, zap.NewNop())

	require.NoError(t, svc.Reject("p1"))
	_, err := m.repos.Items.GetByID("p1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Equal(t, 1, store.count())

	assert.ErrorIs(t, svc.Reject("a1"), services.ErrInvalidTransition)
	assert.Equal(t, 1, store.count())
	assert.ErrorIs(t, svc.Reject("missing"), repositories.ErrNotFound)
}

func TestModerationService_StatsAndRoles(t *testing.T) {
	m := newMarketplace()
	m.addItem("p1", "alice", models.ItemStatusPendingApproval, 30)
	m.addItem("a1", "alice", models.ItemStatusAvailable, 30)
	m.addItem("a2", "bob", models.ItemStatusAvailable, 30)
	m.addItem("s1", "bob", models.ItemStatusSwapped, 30)
	m.addItem("r1", "bob", models.ItemStatusRedeemed, 30)
	require.NoError(t, m.repos.Swaps.Create(&models.SwapRequest{RequesterID: "bob", ItemID: "a1", OwnerID: "alice", Status: models.SwapStatusPending}))
	require.NoError(t, m.repos.Swaps.Create(&models.SwapRequest{RequesterID: "alice", ItemID: "s1", OwnerID: "bob", Status: models.SwapStatusAccepted}))
	svc := services.NewModerationService(m.repos, m.tx, nil, 10, events.NopPublisher{}, zap.NewNop())

	st, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, services.Stats{
		TotalItems:     5,
		PendingItems:   1,
		AvailableItems: 2,
		SwappedItems:   1,
		RedeemedItems:  1,
		TotalUsers:     2,
		TotalSwaps:     2,
		PendingSwaps:   1,
	}, st)

	require.NoError(t, svc.SetRole("bob", models.RoleAdmin))
	bob, err := m.repos.Users.GetByID("bob")
	require.NoError(t, err)
	assert.True(t, bob.IsAdmin())

	assert.ErrorIs(t, svc.SetRole("bob", "superuser"), services.ErrValidation)
	assert.ErrorIs(t, svc.SetRole("nobody", models.RoleUser), repositories.ErrNotFound)

	users, err := svc.Users()
	require.NoError(t, err)
	assert.Len(t, users, 2)
	swaps, err := svc.Swaps()
	require.NoError(t, err)
	assert.Len(t, swaps, 2)
}
