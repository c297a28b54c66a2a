package api

import (
	"log/slog"
	"net/http"

	"github.com/Fakhri-abraar/taskdeck/internal/api/shared"
	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/Fakhri-abraar/taskdeck/internal/store"
)

// CategoryHandler handles category API requests. Categories are strictly
// owner-scoped: a user only ever sees their own.
type CategoryHandler struct {
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryStore store.CategoryStore, log *slog.Logger) *CategoryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CategoryHandler{
		categoryStore: categoryStore,
		logger:        log.With(slog.String("component", "category_handler")),
	}
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := principalFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	category, err := domain.NewCategory(req.Name, caller)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid category data")
		return
	}

	if err := h.categoryStore.Create(r.Context(), category); err != nil {
		h.logger.Error("failed to create category",
			"error", err,
			"owner", caller)
		HandleAPIError(w, r, err, "Failed to create category")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}

// List handles GET /categories, returning the caller's categories sorted
// by name.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := principalFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	categories, err := h.categoryStore.ListByOwner(r.Context(), caller)
	if err != nil {
		h.logger.Error("failed to list categories",
			"error", err,
			"owner", caller)
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}
