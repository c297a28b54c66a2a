package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/Fakhri-abraar/taskdeck/internal/platform/logger"
	"github.com/Fakhri-abraar/taskdeck/internal/store"
	"github.com/google/uuid"
)

// AttachmentRemover removes a stored attachment by its stored filename.
// Used as a cleanup hook when a task with an attachment is deleted.
type AttachmentRemover interface {
	Remove(storedFilename string) error
}

// CreateTaskInput holds the caller-supplied fields of a new task.
// FilePath is never part of creation; attachments are linked after the
// upload endpoint has stored the file.
type CreateTaskInput struct {
	Title       string
	Description *string
	Priority    domain.Priority
	DueDate     *time.Time
	CategoryID  uuid.UUID
	IsPublic    bool
}

// UpdateTaskInput is a partial patch: nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	DueDate     *time.Time
	CategoryID  *uuid.UUID
	IsCompleted *bool
	IsPublic    *bool
	FilePath    *string
}

// TaskService implements the task operations with their ownership and
// visibility rules. All "absent" and "present but inaccessible" outcomes
// collapse to store.ErrTaskNotFound so existence is never disclosed.
type TaskService struct {
	tasks       store.TaskStore
	categories  store.CategoryStore
	attachments AttachmentRemover
	logger      *slog.Logger
}

// NewTaskService creates a TaskService. attachments may be nil, in which
// case deletes skip the attachment cleanup hook.
func NewTaskService(
	tasks store.TaskStore,
	categories store.CategoryStore,
	attachments AttachmentRemover,
	log *slog.Logger,
) *TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &TaskService{
		tasks:       tasks,
		categories:  categories,
		attachments: attachments,
		logger:      log.With(slog.String("component", "task_service")),
	}
}

// Create stores a new task authored by caller. The referenced category
// must exist and belong to the caller.
func (s *TaskService) Create(
	ctx context.Context,
	caller string,
	input CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkCategoryUsable(ctx, caller, input.CategoryID); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(
		input.Title,
		input.Description,
		input.Priority,
		input.DueDate,
		input.IsPublic,
		caller,
		input.CategoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			"error", err,
			"author", caller)
		return nil, err
	}

	log.Info("task created",
		"task_id", task.ID,
		"author", caller)
	return task, nil
}

// Get returns the task if the caller may read it: authors read their own
// tasks unconditionally, everyone else only public ones.
func (s *TaskService) Get(ctx context.Context, caller string, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.ReadableBy(caller) {
		return nil, store.ErrTaskNotFound
	}

	return task, nil
}

// Query returns one page of tasks in the given scope. Defaults are
// applied to pagination and sort before the store is consulted.
func (s *TaskService) Query(ctx context.Context, q store.TaskQuery) (*store.TaskPage, error) {
	q.Normalize()
	return s.tasks.Query(ctx, q)
}

// Update applies a partial patch to a task. Only the author may update,
// even when the task is public; other callers get a not-found outcome.
func (s *TaskService) Update(
	ctx context.Context,
	caller string,
	id uuid.UUID,
	patch UpdateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.OwnedBy(caller) {
		return nil, store.ErrTaskNotFound
	}

	applyPatch(task, patch)
	task.UpdatedAt = time.Now().UTC()

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		log.Error("failed to update task",
			"error", err,
			"task_id", id)
		return nil, err
	}

	// Re-read for a fresh joined projection (category may have changed).
	return s.tasks.GetByID(ctx, id)
}

// Remove deletes a task. Only the author may delete. After the row is
// gone, any stored attachment is removed best-effort; a cleanup failure
// is logged, never surfaced.
func (s *TaskService) Remove(ctx context.Context, caller string, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !task.OwnedBy(caller) {
		return store.ErrTaskNotFound
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		log.Error("failed to delete task",
			"error", err,
			"task_id", id)
		return err
	}

	if task.FilePath != nil && *task.FilePath != "" && s.attachments != nil {
		if err := s.attachments.Remove(*task.FilePath); err != nil {
			log.Warn("failed to remove task attachment",
				"error", err,
				"task_id", id,
				"file_path", *task.FilePath)
		}
	}

	log.Info("task deleted",
		"task_id", id,
		"author", caller)
	return nil
}

// checkCategoryUsable verifies the category exists and is owned by the
// caller. Both failure modes collapse to ErrCategoryNotUsable.
func (s *TaskService) checkCategoryUsable(ctx context.Context, caller string, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrCategoryNotUsable
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCategoryNotUsable
		}
		return err
	}

	if category.OwnerID != caller {
		return ErrCategoryNotUsable
	}

	return nil
}

func applyPatch(task *domain.Task, patch UpdateTaskInput) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.CategoryID != nil && *patch.CategoryID != uuid.Nil {
		task.CategoryID = *patch.CategoryID
	}
	if patch.IsCompleted != nil {
		task.IsCompleted = *patch.IsCompleted
	}
	if patch.IsPublic != nil {
		task.IsPublic = *patch.IsPublic
	}
	if patch.FilePath != nil {
		task.FilePath = patch.FilePath
	}
}
