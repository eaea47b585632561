package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/concilia/internal/domain"
	"github.com/iho/concilia/internal/usecase"
)

// MockEntryRepository is a stateful in-memory implementation of
// EntryRepository. Entries keep insertion order, like the real store does
// with its creation-time ordering. Any *Func field overrides the default
// behavior for that method.
type MockEntryRepository struct {
	mu      sync.RWMutex
	seq     int
	entries map[string]*domain.Entry
	order   []string

	CreateFunc     func(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	CreateManyFunc func(ctx context.Context, entries []*domain.Entry) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Entry, error)
	GetAllFunc     func(ctx context.Context) ([]*domain.Entry, error)
	UpdateFunc     func(ctx context.Context, entry *domain.Entry) error
	UpdateTxFunc   func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	DeleteFunc     func(ctx context.Context, id string) error
	ClearFunc      func(ctx context.Context) error
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *entry
	if stored.ID == "" {
		m.seq++
		stored.ID = fmt.Sprintf("entry-%03d", m.seq)
	}
	m.entries[stored.ID] = &stored
	m.order = append(m.order, stored.ID)
	result := stored
	return &result, nil
}

func (m *MockEntryRepository) CreateMany(ctx context.Context, entries []*domain.Entry) error {
	if m.CreateManyFunc != nil {
		return m.CreateManyFunc(ctx, entries)
	}
	for _, entry := range entries {
		if _, err := m.Create(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	result := *entry
	return &result, nil
}

func (m *MockEntryRepository) GetAll(ctx context.Context) ([]*domain.Entry, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Entry, 0, len(m.order))
	for _, id := range m.order {
		result := *m.entries[id]
		out = append(out, &result)
	}
	return out, nil
}

func (m *MockEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	stored := *entry
	m.entries[entry.ID] = &stored
	return nil
}

func (m *MockEntryRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, entry)
	}
	return m.Update(ctx, entry)
}

func (m *MockEntryRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.entries, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockEntryRepository) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*domain.Entry)
	m.order = nil
	return nil
}

// Len reports how many entries the mock holds.
func (m *MockEntryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// MockTxManager is a mock implementation of TransactionManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTx{}, nil
}

// MockTx is a mock implementation of Transaction.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTx) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}
