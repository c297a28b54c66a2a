package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/Fakhri-abraar/taskdeck/internal/platform/logger"
	"github.com/Fakhri-abraar/taskdeck/internal/store"
	"github.com/google/uuid"
)

// CategoryStore implements the store.CategoryStore interface using a
// PostgreSQL database as the storage backend.
type CategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface. If logger is nil, the default logger is used.
func NewCategoryStore(db store.DBTX, log *slog.Logger) *CategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CategoryStore{
		db:     db,
		logger: log.With(slog.String("component", "category_store")),
	}
}

// Ensure CategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*CategoryStore)(nil)

// Create implements store.CategoryStore.Create.
// There is no name uniqueness constraint; any non-empty name succeeds.
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during create",
			"error", err,
			"category_id", category.ID)
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO categories (id, name, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		category.ID,
		category.Name,
		category.OwnerID,
		category.CreatedAt,
		category.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during category creation",
				"error", err,
				"owner_id", category.OwnerID)
			return fmt.Errorf("%w: owner %s not found",
				store.ErrInvalidEntity, category.OwnerID)
		}

		log.Error("failed to create category",
			"error", err,
			"category_id", category.ID)
		return MapError(err)
	}

	log.Info("category created",
		"category_id", category.ID,
		"owner_id", category.OwnerID)
	return nil
}

// GetByID implements store.CategoryStore.GetByID.
// Returns store.ErrCategoryNotFound if the category does not exist.
func (s *CategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.OwnerID,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", "category_id", id)
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category by ID",
			"error", err,
			"category_id", id)
		return nil, MapError(err)
	}

	return &category, nil
}

// ListByOwner implements store.CategoryStore.ListByOwner.
// Results are sorted by name ascending.
func (s *CategoryStore) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM categories
		WHERE owner_id = $1
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list categories by owner",
			"error", err,
			"owner_id", ownerID)
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "error", err)
		}
	}()

	categories := []*domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.OwnerID,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			log.Error("failed to scan category row", "error", err)
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning category rows", "error", err)
		return nil, err
	}

	return categories, nil
}
