package service

import (
	"errors"
	"fmt"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
)

// Service-level errors.
var (
	// ErrCategoryNotUsable is returned when a task refers to a category
	// that does not exist or is owned by a different user. Like the task
	// not-found collapse, the two cases are indistinguishable so category
	// existence is not disclosed across owners.
	ErrCategoryNotUsable = fmt.Errorf(
		"%w: category does not exist or is not usable by the caller", domain.ErrValidation)
)

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
