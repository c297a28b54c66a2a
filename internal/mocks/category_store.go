package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/Fakhri-abraar/taskdeck/internal/store"
	"github.com/google/uuid"
)

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, category *domain.Category) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	ListByOwnerFn func(ctx context.Context, ownerID string) ([]*domain.Category, error)

	// Data for default implementation
	mu         sync.Mutex
	Categories map[uuid.UUID]*domain.Category

	CreateError  error
	GetByIDError error
}

// NewMockCategoryStore creates a new mock store with initialized defaults
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

// Create implements the CategoryStore interface
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Categories[category.ID] = category
	return nil
}

// GetByID implements the CategoryStore interface
func (m *MockCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	category, exists := m.Categories[id]
	if !exists {
		return nil, store.ErrCategoryNotFound
	}

	return category, nil
}

// ListByOwner implements the CategoryStore interface, sorting by name
// ascending like the real store.
func (m *MockCategoryStore) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*domain.Category
	for _, category := range m.Categories {
		if category.OwnerID == ownerID {
			result = append(result, category)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}
