package store

import (
	"context"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password; plaintext is never persisted.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains the password hash for credential checks;
	// callers must never expose it.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
