package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common category validation errors
var (
	ErrEmptyCategoryName  = errors.New("category name cannot be empty")
	ErrEmptyCategoryOwner = errors.New("category owner cannot be empty")
)

// Category is an owner-scoped label attached to tasks. Names are not
// unique; two categories with the same name may coexist for one owner.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCategory creates a Category owned by the given user.
func NewCategory(name, ownerID string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrInvalidID
	}

	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}

	if c.OwnerID == "" {
		return ErrEmptyCategoryOwner
	}

	return nil
}
