package store

import (
	"context"
	"time"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/google/uuid"
)

// TaskScope selects which visibility partition a task query operates over.
// Exactly one scope applies per query, never both.
type TaskScope string

const (
	// ScopeMine restricts the query to tasks authored by the caller.
	ScopeMine TaskScope = "mine"

	// ScopePublic restricts the query to tasks with is_public set,
	// regardless of author.
	ScopePublic TaskScope = "public"
)

// SortOrder is the direction of the createdAt sort key.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// TaskFilter holds the optional predicates of a task query. All set
// fields combine with logical AND.
type TaskFilter struct {
	// Search matches as a case-sensitive substring against title OR
	// description. Empty means no search predicate.
	Search string

	// Priority matches exactly when non-empty.
	Priority domain.Priority

	// IsCompleted matches exactly when non-nil.
	IsCompleted *bool
}

// TaskQuery describes one page of a filtered, scoped task listing.
type TaskQuery struct {
	Filter TaskFilter
	Scope  TaskScope

	// Caller is the authenticated username; consulted only for ScopeMine.
	Caller string

	// Page is 1-based; PageSize is the window length. Values below the
	// minimums fall back to the defaults.
	Page     int
	PageSize int

	SortOrder SortOrder
}

// Normalize applies pagination and sort defaults in place.
func (q *TaskQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.SortOrder != SortAsc && q.SortOrder != SortDesc {
		q.SortOrder = SortDesc
	}
}

// Offset returns the row offset of the requested page window.
func (q *TaskQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// TaskPage is one page of query results. Total is the full matching
// count, independent of the page window.
type TaskPage struct {
	Items    []*domain.Task
	Total    int
	Page     int
	PageSize int
}

// TaskStore defines the interface for task data persistence and the
// query engine over it.
type TaskStore interface {
	// Create saves a new task.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID with its category and author
	// projection joined. It performs no access control; callers gate
	// visibility. Returns ErrTaskNotFound if no such row exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Query returns one page of tasks matching the filter within the
	// given scope, with joined projections, plus the total matching
	// count. Ordered by createdAt in the requested direction with id as
	// the tie-break key.
	Query(ctx context.Context, q TaskQuery) (*TaskPage, error)

	// Update replaces the mutable fields of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task. Returns ErrTaskNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReminderTaskSource is the trusted-principal read path used by the
// reminder scheduler. It deliberately bypasses the MINE/PUBLIC scope
// gate of TaskStore.Query: the scheduler operates across all owners and
// must not be expressible through the caller-scoped entry point.
type ReminderTaskSource interface {
	// FindDueBetween returns all incomplete tasks whose due date falls in
	// [from, to), across all owners, with the author projection joined.
	FindDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error)
}
