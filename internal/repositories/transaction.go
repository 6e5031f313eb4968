package repositories

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles the repositories that take part in one unit of work.
type Repositories struct {
	Items       ItemRepository
	Swaps       SwapRepository
	Users       UserRepository
	Redemptions RedemptionRepository
}

// Transactor runs fn with repositories bound to a single transaction. If fn
// returns an error the transaction is rolled back.
type Transactor interface {
	WithinTransaction(fn func(repos Repositories) error) error
}

// NewGORMRepositories builds the GORM-backed repository set on db.
func NewGORMRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Items:       NewGORMItemRepository(db),
		Swaps:       NewGORMSwapRepository(db),
		Users:       NewGORMUserRepository(db),
		Redemptions: NewGORMRedemptionRepository(db),
	}
}

// GORMTransactor runs units of work inside database transactions.
type GORMTransactor struct {
	db *gorm.DB
}

// NewGORMTransactor creates a new GORMTransactor.
func NewGORMTransactor(db *gorm.DB) *GORMTransactor {
	return &GORMTransactor{db: db}
}

// WithinTransaction implements Transactor.
func (t *GORMTransactor) WithinTransaction(fn func(repos Repositories) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMRepositories(tx))
	})
}

// MockTransactor serialises units of work over in-memory repositories. It
// does not roll back; callers order their writes so checks fail first.
type MockTransactor struct {
	repos Repositories
	mu    sync.Mutex
}

// NewMockTransactor creates a MockTransactor over repos.
func NewMockTransactor(repos Repositories) *MockTransactor {
	return &MockTransactor{repos: repos}
}

// NewMockRepositories builds a fresh in-memory repository set.
func NewMockRepositories() Repositories {
	return Repositories{
		Items:       NewMockItemRepository(),
		Swaps:       NewMockSwapRepository(),
		Users:       NewMockUserRepository(),
		Redemptions: NewMockRedemptionRepository(),
	}
}

// WithinTransaction implements Transactor.
func (t *MockTransactor) WithinTransaction(fn func(repos Repositories) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.repos)
}
