package services_test

import (
	"fmt"
	"sync"

	"rewear/internal/events"
	"rewear/internal/models"
	"rewear/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) AdjustPoints(id string, delta int) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(id, role string) error {
	args := m.Called(id, role)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetAll() ([]models.Item, error) {
	args := m.Called()
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByStatus(status string) ([]models.Item, error) {
	args := m.Called(status)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByUser(userID string) ([]models.Item, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(id string) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) TransitionStatus(id, from, to string) error {
	args := m.Called(id, from, to)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(e events.Event) error {
	args := m.Called(e)
	return args.Error(0)
}

// memoryImageStore keeps saved images in a map.
type memoryImageStore struct {
	mu    sync.Mutex
	files map[string][]byte
	next  int
}

func newMemoryImageStore() *memoryImageStore {
	return &memoryImageStore{files: make(map[string][]byte)}
}

func (s *memoryImageStore) Save(data []byte, ext string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	url := fmt.Sprintf("/uploads/img-%d.%s", s.next, ext)
	s.files[url] = data
	return url, nil
}

func (s *memoryImageStore) Remove(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, url)
	return nil
}

func (s *memoryImageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// marketplace is an in-memory repository set seeded with two members and
// their listings.
type marketplace struct {
	repos repositories.Repositories
	tx    *repositories.MockTransactor
	alice *models.User
	bob   *models.User
}

func newMarketplace() *marketplace {
	repos := repositories.NewMockRepositories()
	m := &marketplace{
		repos: repos,
		tx:    repositories.NewMockTransactor(repos),
		alice: &models.User{ID: "alice", DisplayName: "Alice", Email: "alice@example.com", Points: 100, Role: models.RoleUser},
		bob:   &models.User{ID: "bob", DisplayName: "Bob", Email: "bob@example.com", Points: 100, Role: models.RoleUser},
	}
	_ = repos.Users.Create(m.alice)
	_ = repos.Users.Create(m.bob)
	return m
}

func (m *marketplace) addItem(id, owner, status string, points int) {
	_ = m.repos.Items.Create(&models.Item{
		ID:             id,
		Title:          "Item " + id,
		Category:       "Tops",
		Type:           "Shirt",
		Size:           "M",
		Condition:      "Good",
		Images:         []string{"/uploads/" + id + ".jpg"},
		PointsRequired: points,
		UserID:         owner,
		Status:         status,
	})
}

func (m *marketplace) status(id string) string {
	item, err := m.repos.Items.GetByID(id)
	if err != nil {
		return ""
	}
	return item.Status
}

func (m *marketplace) points(userID string) int {
	u, err := m.repos.Users.GetByID(userID)
	if err != nil {
		return -1
	}
	return u.Points
}
