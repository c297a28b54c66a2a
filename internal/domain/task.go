package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors
var (
	ErrEmptyTaskTitle  = errors.New("task title cannot be empty")
	ErrEmptyTaskAuthor = errors.New("task author cannot be empty")
	ErrEmptyCategoryID = errors.New("task category cannot be empty")
)

// Priority is the urgency level of a task.
type Priority string

// Known priority levels.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is one of the known priority levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Author is the projection of a task's owner that is safe to return to
// clients: identity fields only, never the password hash.
type Author struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Task is a user-owned work item. A task always has exactly one author
// and exactly one category. It is readable by its author unconditionally
// and by other principals only when IsPublic is set.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted bool       `json:"isCompleted"`
	IsPublic    bool       `json:"isPublic"`
	FilePath    *string    `json:"filePath"`
	AuthorID    string     `json:"authorId"`
	CategoryID  uuid.UUID  `json:"categoryId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Joined projections, populated on reads only.
	Category *Category `json:"category,omitempty"`
	Author   *Author   `json:"author,omitempty"`
}

// NewTask creates a Task authored by the given user.
func NewTask(
	title string,
	description *string,
	priority Priority,
	dueDate *time.Time,
	isPublic bool,
	authorID string,
	categoryID uuid.UUID,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     dueDate,
		IsCompleted: false,
		IsPublic:    isPublic,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrInvalidID
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}

	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}

	if t.AuthorID == "" {
		return ErrEmptyTaskAuthor
	}

	if t.CategoryID == uuid.Nil {
		return ErrEmptyCategoryID
	}

	return nil
}

// ReadableBy reports whether the given principal may read the task.
func (t *Task) ReadableBy(username string) bool {
	return t.IsPublic || t.AuthorID == username
}

// OwnedBy reports whether the given principal authored the task.
// Mutations are restricted to the owner even when the task is public.
func (t *Task) OwnedBy(username string) bool {
	return t.AuthorID == username
}
