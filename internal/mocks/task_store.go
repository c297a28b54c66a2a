package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/Fakhri-abraar/taskdeck/internal/store"
	"github.com/google/uuid"
)

// MockTaskStore implements store.TaskStore and store.ReminderTaskSource
// for testing. Its default implementation mirrors the real query
// semantics: AND-combined filters, createdAt ordering with id tie-break,
// and window pagination with a full matching count.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, task *domain.Task) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	QueryFn          func(ctx context.Context, q store.TaskQuery) (*store.TaskPage, error)
	UpdateFn         func(ctx context.Context, task *domain.Task) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	FindDueBetweenFn func(ctx context.Context, from, to time.Time) ([]*domain.Task, error)

	// Data for default implementation
	mu    sync.Mutex
	Tasks map[uuid.UUID]*domain.Task

	CreateError  error
	GetByIDError error
	QueryError   error
	UpdateError  error
	DeleteError  error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}

	return task, nil
}

// Query implements the TaskStore interface
func (m *MockTaskStore) Query(ctx context.Context, q store.TaskQuery) (*store.TaskPage, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, q)
	}

	if m.QueryError != nil {
		return nil, m.QueryError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var matching []*domain.Task
	for _, task := range m.Tasks {
		if matches(task, q) {
			matching = append(matching, task)
		}
	}

	sort.Slice(matching, func(i, j int) bool {
		a, b := matching[i], matching[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if q.SortOrder == store.SortAsc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if q.SortOrder == store.SortAsc {
			return a.ID.String() < b.ID.String()
		}
		return a.ID.String() > b.ID.String()
	})

	total := len(matching)

	start := q.Offset()
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	return &store.TaskPage{
		Items:    matching[start:end],
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}

	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}

// FindDueBetween implements the ReminderTaskSource interface
func (m *MockTaskStore) FindDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	if m.FindDueBetweenFn != nil {
		return m.FindDueBetweenFn(ctx, from, to)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*domain.Task
	for _, task := range m.Tasks {
		if task.IsCompleted || task.DueDate == nil {
			continue
		}
		due := *task.DueDate
		if due.Before(from) || !due.Before(to) {
			continue
		}
		result = append(result, task)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}
		return a.ID.String() < b.ID.String()
	})

	return result, nil
}

func matches(task *domain.Task, q store.TaskQuery) bool {
	switch q.Scope {
	case store.ScopeMine:
		if task.AuthorID != q.Caller {
			return false
		}
	case store.ScopePublic:
		if !task.IsPublic {
			return false
		}
	}

	if q.Filter.Search != "" {
		inTitle := strings.Contains(task.Title, q.Filter.Search)
		inDescription := task.Description != nil && strings.Contains(*task.Description, q.Filter.Search)
		if !inTitle && !inDescription {
			return false
		}
	}

	if q.Filter.Priority != "" && task.Priority != q.Filter.Priority {
		return false
	}

	if q.Filter.IsCompleted != nil && task.IsCompleted != *q.Filter.IsCompleted {
		return false
	}

	return true
}
