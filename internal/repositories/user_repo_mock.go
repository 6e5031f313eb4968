package repositories

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"rewear/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user; emails are unique.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return &u, nil
}

// GetAll returns every user, oldest first.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b models.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

// UpdateProfile saves the editable profile fields.
func (r *MockUserRepository) UpdateProfile(user *models.User) error {
	return r.modify(user.ID, func(u *models.User) error {
		u.DisplayName = user.DisplayName
		u.Location = user.Location
		u.Bio = user.Bio
		return nil
	})
}

// AdjustPoints adds delta to the balance unless it would go negative.
func (r *MockUserRepository) AdjustPoints(id string, delta int) error {
	return r.modify(id, func(u *models.User) error {
		if u.Points+delta < 0 {
			return fmt.Errorf("user %s cannot spend %d points: %w", id, -delta, ErrInsufficientPoints)
		}
		u.Points += delta
		return nil
	})
}

// UpdateRole changes the account role.
func (r *MockUserRepository) UpdateRole(id, role string) error {
	return r.modify(id, func(u *models.User) error {
		u.Role = role
		return nil
	})
}

func (r *MockUserRepository) modify(id string, fn func(*models.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	if err := fn(&u); err != nil {
		return err
	}
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}
