package store

import (
	"context"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/google/uuid"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create saves a new category. No name uniqueness is enforced.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// ListByOwner retrieves all categories owned by the given user,
	// sorted by name ascending.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error)
}
