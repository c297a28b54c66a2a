package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/Fakhri-abraar/taskdeck/internal/platform/logger"
	"github.com/Fakhri-abraar/taskdeck/internal/store"
	"github.com/google/uuid"
)

// taskSelectColumns is the joined projection returned on every read:
// the full task row, the full category row, and the author's identity
// fields. The password hash is never part of any task query.
const taskSelectColumns = `
	t.id, t.title, t.description, t.priority, t.due_date,
	t.is_completed, t.is_public, t.file_path, t.author_id, t.category_id,
	t.created_at, t.updated_at,
	c.id, c.name, c.owner_id, c.created_at, c.updated_at,
	u.username, u.email
`

const taskFromJoin = `
	FROM tasks t
	JOIN categories c ON c.id = t.category_id
	JOIN users u ON u.username = t.author_id
`

// TaskStore implements store.TaskStore and store.ReminderTaskSource
// using a PostgreSQL database as the storage backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. If logger is nil, the default logger is used.
func NewTaskStore(db store.DBTX, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements both task persistence interfaces
var (
	_ store.TaskStore          = (*TaskStore)(nil)
	_ store.ReminderTaskSource = (*TaskStore)(nil)
)

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			"error", err,
			"task_id", task.ID)
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (
			id, title, description, priority, due_date,
			is_completed, is_public, file_path, author_id, category_id,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Priority,
		task.DueDate,
		task.IsCompleted,
		task.IsPublic,
		task.FilePath,
		task.AuthorID,
		task.CategoryID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				"error", err,
				"task_id", task.ID)
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		log.Error("failed to create task",
			"error", err,
			"task_id", task.ID)
		return MapError(err)
	}

	log.Debug("task created",
		"task_id", task.ID,
		"author_id", task.AuthorID)
	return nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if no such row exists. Access control is
// the caller's responsibility.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + taskSelectColumns + taskFromJoin + " WHERE t.id = $1"

	task, err := scanTaskRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", "task_id", id)
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			"error", err,
			"task_id", id)
		return nil, MapError(err)
	}

	return task, nil
}

// Query implements store.TaskStore.Query. The total count runs over the
// same predicates as the page query, independent of the page window.
func (s *TaskStore) Query(ctx context.Context, q store.TaskQuery) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	q.Normalize()

	where, args := taskPredicates(q)

	countQuery := "SELECT COUNT(*) FROM tasks t WHERE " + where
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			"error", err,
			"scope", q.Scope)
		return nil, MapError(err)
	}

	pageQuery := "SELECT " + taskSelectColumns + taskFromJoin +
		" WHERE " + where +
		" " + taskOrderClause(q.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	pageArgs := append(args, q.PageSize, q.Offset())

	rows, err := s.db.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		log.Error("failed to query tasks",
			"error", err,
			"scope", q.Scope)
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "error", err)
		}
	}()

	items := []*domain.Task{}
	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			log.Error("failed to scan task row", "error", err)
			return nil, err
		}
		items = append(items, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning task rows", "error", err)
		return nil, err
	}

	log.Debug("task query executed",
		"scope", q.Scope,
		"total", total,
		"page", q.Page,
		"returned", len(items))

	return &store.TaskPage{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

// Update implements store.TaskStore.Update.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			"error", err,
			"task_id", task.ID)
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, due_date = $4,
			is_completed = $5, is_public = $6, file_path = $7,
			category_id = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Priority,
		task.DueDate,
		task.IsCompleted,
		task.IsPublic,
		task.FilePath,
		task.CategoryID,
		task.UpdatedAt,
		task.ID,
	)

	if err != nil {
		log.Error("failed to update task",
			"error", err,
			"task_id", task.ID)
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete. Hard delete, no tombstone.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			"error", err,
			"task_id", id)
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Debug("task deleted", "task_id", id)
	return nil
}

// FindDueBetween implements store.ReminderTaskSource.FindDueBetween.
// Unscoped across all owners: the reminder job is a trusted system
// principal, not a caller-scoped actor.
func (s *TaskStore) FindDueBetween(
	ctx context.Context,
	from, to time.Time,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT t.id, t.title, t.due_date, t.author_id, u.username, u.email
		FROM tasks t
		JOIN users u ON u.username = t.author_id
		WHERE t.is_completed = FALSE
		  AND t.due_date >= $1
		  AND t.due_date < $2
		ORDER BY t.due_date ASC, t.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		log.Error("failed to query tasks due for reminder",
			"error", err,
			"from", from,
			"to", to)
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "error", err)
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		var (
			task    domain.Task
			author  domain.Author
			dueDate sql.NullTime
		)
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&dueDate,
			&task.AuthorID,
			&author.Username,
			&author.Email,
		); err != nil {
			log.Error("failed to scan due task row", "error", err)
			return nil, err
		}
		if dueDate.Valid {
			due := dueDate.Time
			task.DueDate = &due
		}
		task.Author = &author
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning due task rows", "error", err)
		return nil, err
	}

	return tasks, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTaskRow reads one joined task projection.
func scanTaskRow(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		category    domain.Category
		author      domain.Author
		description sql.NullString
		dueDate     sql.NullTime
		filePath    sql.NullString
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.Priority,
		&dueDate,
		&task.IsCompleted,
		&task.IsPublic,
		&filePath,
		&task.AuthorID,
		&task.CategoryID,
		&task.CreatedAt,
		&task.UpdatedAt,
		&category.ID,
		&category.Name,
		&category.OwnerID,
		&category.CreatedAt,
		&category.UpdatedAt,
		&author.Username,
		&author.Email,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		desc := description.String
		task.Description = &desc
	}
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}
	if filePath.Valid {
		path := filePath.String
		task.FilePath = &path
	}
	task.Category = &category
	task.Author = &author

	return &task, nil
}
