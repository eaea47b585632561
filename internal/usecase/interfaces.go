package usecase

import (
	"context"
	"time"

	"github.com/iho/concilia/internal/domain"
)

// EntryRepository defines data access for entries. It is the storage
// collaborator of the reconciliation core: get-all hands back the full
// working set, create assigns identity, create-many is atomic.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	CreateMany(ctx context.Context, entries []*domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetAll(ctx context.Context) ([]*domain.Entry, error)
	Update(ctx context.Context, entry *domain.Entry) error
	UpdateTx(ctx context.Context, tx Transaction, entry *domain.Entry) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Transaction represents a storage transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
