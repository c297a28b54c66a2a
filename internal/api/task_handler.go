package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Fakhri-abraar/taskdeck/internal/api/shared"
	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/Fakhri-abraar/taskdeck/internal/service"
	"github.com/Fakhri-abraar/taskdeck/internal/store"
	"github.com/google/uuid"
)

// TaskHandler handles task API requests. Authorization decisions live in
// the task service; the handler only translates HTTP to service calls.
type TaskHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := principalFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	input, err := createInputFromRequest(req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.Create(r.Context(), caller, input)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// QueryMine handles GET /tasks, listing the caller's own tasks.
func (h *TaskHandler) QueryMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := principalFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	q, err := queryFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	q.Scope = store.ScopeMine
	q.Caller = caller

	h.respondWithPage(w, r, q)
}

// QueryPublic handles GET /tasks/public. No authentication is required;
// only tasks marked public are visible here.
func (h *TaskHandler) QueryPublic(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	q.Scope = store.ScopePublic

	h.respondWithPage(w, r, q)
}

// GetOne handles GET /tasks/{id}.
func (h *TaskHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	caller, ok := principalFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.Get(r.Context(), caller, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Patch handles PATCH /tasks/{id}.
func (h *TaskHandler) Patch(w http.ResponseWriter, r *http.Request) {
	caller, ok := principalFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	patch, err := updateInputFromRequest(req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.Update(r.Context(), caller, id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := principalFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.Remove(r.Context(), caller, id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{
		Message: fmt.Sprintf("Task with ID %s successfully deleted", id),
	})
}

func (h *TaskHandler) respondWithPage(w http.ResponseWriter, r *http.Request, q store.TaskQuery) {
	page, err := h.taskService.Query(r.Context(), q)
	if err != nil {
		h.logger.Error("task query failed",
			"error", err,
			"scope", q.Scope)
		HandleAPIError(w, r, err, "Failed to query tasks")
		return
	}

	items := page.Items
	if items == nil {
		items = []*domain.Task{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Data:  items,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.PageSize,
	})
}

func createInputFromRequest(req CreateTaskRequest) (service.CreateTaskInput, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return service.CreateTaskInput{}, domain.NewValidationError("categoryId", "has invalid format", domain.ErrInvalidID)
	}

	input := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		CategoryID:  categoryID,
	}

	if req.DueDate != nil && *req.DueDate != "" {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return service.CreateTaskInput{}, err
		}
		input.DueDate = &due
	}

	if req.IsPublic != nil {
		input.IsPublic = *req.IsPublic
	}

	return input, nil
}

func updateInputFromRequest(req UpdateTaskRequest) (service.UpdateTaskInput, error) {
	patch := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		IsPublic:    req.IsPublic,
		FilePath:    req.FilePath,
	}

	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		patch.Priority = &p
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return service.UpdateTaskInput{}, domain.NewValidationError("categoryId", "has invalid format", domain.ErrInvalidID)
		}
		patch.CategoryID = &categoryID
	}

	if req.DueDate != nil && *req.DueDate != "" {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return service.UpdateTaskInput{}, err
		}
		patch.DueDate = &due
	}

	return patch, nil
}

// queryFromRequest builds a TaskQuery from the listing query parameters.
// Unknown parameters are ignored; malformed known ones are rejected.
func queryFromRequest(r *http.Request) (store.TaskQuery, error) {
	params := r.URL.Query()

	q := store.TaskQuery{
		Filter: store.TaskFilter{
			Search: params.Get("search"),
		},
	}

	if raw := params.Get("priority"); raw != "" {
		p := domain.Priority(raw)
		if !p.IsValid() {
			return store.TaskQuery{}, domain.NewValidationError("priority", "must be one of low, medium, high", domain.ErrInvalidPriority)
		}
		q.Filter.Priority = p
	}

	if raw := params.Get("isCompleted"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return store.TaskQuery{}, domain.NewValidationError("isCompleted", "must be true or false", domain.ErrValidation)
		}
		q.Filter.IsCompleted = &completed
	}

	if raw := params.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return store.TaskQuery{}, domain.NewValidationError("page", "must be a positive integer", domain.ErrValidation)
		}
		q.Page = page
	}

	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return store.TaskQuery{}, domain.NewValidationError("limit", "must be a positive integer", domain.ErrValidation)
		}
		q.PageSize = limit
	}

	switch raw := params.Get("sortOrder"); raw {
	case "":
		// Normalize applies the default.
	case string(store.SortAsc):
		q.SortOrder = store.SortAsc
	case string(store.SortDesc):
		q.SortOrder = store.SortDesc
	default:
		return store.TaskQuery{}, domain.NewValidationError("sortOrder", "must be asc or desc", domain.ErrValidation)
	}

	return q, nil
}
