package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Fakhri-abraar/taskdeck/internal/api/shared"
	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// principalFromRequest extracts the authenticated username placed in the
// request context by the auth middleware.
func principalFromRequest(r *http.Request) (string, bool) {
	return shared.PrincipalFromContext(r.Context())
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parseDueDate accepts an RFC 3339 timestamp or a plain date.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: dueDate must be an ISO date string", domain.ErrValidation)
}
