package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// seedTask inserts a task directly into the store with a fixed creation
// time so ordering assertions are deterministic.
func (env *testEnv) seedTask(
	t *testing.T,
	title, author string,
	categoryID uuid.UUID,
	isPublic bool,
	createdAt time.Time,
) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(title, nil, domain.PriorityMedium, nil, isPublic, author, categoryID)
	require.NoError(t, err)
	task.CreatedAt = createdAt
	require.NoError(t, env.tasks.Create(context.Background(), task))
	return task
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	t.Run("creates a task in own category", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")

		rec := env.do(t, http.MethodPost, "/api/v1/tasks", token, CreateTaskRequest{
			Title:       "write report",
			Description: strPtr("the quarterly one"),
			Priority:    "high",
			DueDate:     strPtr("2026-09-15"),
			CategoryID:  category.ID.String(),
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		task := decodeBody[domain.Task](t, rec)
		assert.Equal(t, "write report", task.Title)
		assert.Equal(t, "alice", task.AuthorID)
		assert.Equal(t, domain.PriorityHigh, task.Priority)
		assert.False(t, task.IsPublic)
		require.NotNil(t, task.DueDate)
	})

	t.Run("foreign category is rejected with 400", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		env.seedUser(t, "bob")
		category := env.seedCategory(t, "bobs", "bob")

		rec := env.do(t, http.MethodPost, "/api/v1/tasks", token, CreateTaskRequest{
			Title:      "sneaky",
			Priority:   "low",
			CategoryID: category.ID.String(),
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown category is rejected with 400", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")

		rec := env.do(t, http.MethodPost, "/api/v1/tasks", token, CreateTaskRequest{
			Title:      "orphan",
			Priority:   "low",
			CategoryID: uuid.NewString(),
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid priority is rejected with 400", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")

		rec := env.do(t, http.MethodPost, "/api/v1/tasks", token, CreateTaskRequest{
			Title:      "urgentissimo",
			Priority:   "urgent",
			CategoryID: category.ID.String(),
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetOneTask(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("owner fetches private task", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")
		task := env.seedTask(t, "private notes", "alice", category.ID, false, now)

		rec := env.do(t, http.MethodGet, "/api/v1/tasks/"+task.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, task.ID, decodeBody[domain.Task](t, rec).ID)
	})

	t.Run("non-owner fetches public task", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedUser(t, "alice")
		bobToken := env.seedUser(t, "bob")
		category := env.seedCategory(t, "work", "alice")
		task := env.seedTask(t, "shared plan", "alice", category.ID, true, now)

		rec := env.do(t, http.MethodGet, "/api/v1/tasks/"+task.ID.String(), bobToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("private task is 404 for non-owner", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedUser(t, "alice")
		bobToken := env.seedUser(t, "bob")
		category := env.seedCategory(t, "work", "alice")
		task := env.seedTask(t, "private notes", "alice", category.ID, false, now)

		rec := env.do(t, http.MethodGet, "/api/v1/tasks/"+task.ID.String(), bobToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")

		rec := env.do(t, http.MethodGet, "/api/v1/tasks/not-a-uuid", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPatchTask(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("owner patches a subset of fields", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")
		task := env.seedTask(t, "draft", "alice", category.ID, false, now)

		rec := env.do(t, http.MethodPatch, "/api/v1/tasks/"+task.ID.String(), token, UpdateTaskRequest{
			Title:       strPtr("final"),
			IsCompleted: boolPtr(true),
		})

		require.Equal(t, http.StatusOK, rec.Code)
		updated := decodeBody[domain.Task](t, rec)
		assert.Equal(t, "final", updated.Title)
		assert.True(t, updated.IsCompleted)
		assert.Equal(t, domain.PriorityMedium, updated.Priority)
	})

	t.Run("public task is not updatable by non-owner", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedUser(t, "alice")
		bobToken := env.seedUser(t, "bob")
		category := env.seedCategory(t, "work", "alice")
		task := env.seedTask(t, "shared plan", "alice", category.ID, true, now)

		rec := env.do(t, http.MethodPatch, "/api/v1/tasks/"+task.ID.String(), bobToken, UpdateTaskRequest{
			Title: strPtr("hijacked"),
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "shared plan", env.tasks.Tasks[task.ID].Title)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("owner deletes and gets confirmation message", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")
		task := env.seedTask(t, "ephemeral", "alice", category.ID, false, now)

		rec := env.do(t, http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[DeleteTaskResponse](t, rec)
		assert.Equal(t, fmt.Sprintf("Task with ID %s successfully deleted", task.ID), body.Message)
		assert.NotContains(t, env.tasks.Tasks, task.ID)
	})

	t.Run("deleting the same task twice returns 404", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")
		task := env.seedTask(t, "ephemeral", "alice", category.ID, false, now)

		require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), token, nil).Code)
		assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), token, nil).Code)
	})

	t.Run("public task is not deletable by non-owner", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedUser(t, "alice")
		bobToken := env.seedUser(t, "bob")
		category := env.seedCategory(t, "work", "alice")
		task := env.seedTask(t, "shared plan", "alice", category.ID, true, now)

		rec := env.do(t, http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), bobToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, env.tasks.Tasks, task.ID)
	})
}

func TestQueryTasks(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	t.Run("own listing excludes other users' tasks", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		env.seedUser(t, "bob")
		aliceCat := env.seedCategory(t, "work", "alice")
		bobCat := env.seedCategory(t, "work", "bob")

		env.seedTask(t, "mine", "alice", aliceCat.ID, false, base)
		env.seedTask(t, "not mine but public", "bob", bobCat.ID, true, base.Add(time.Hour))

		rec := env.do(t, http.MethodGet, "/api/v1/tasks", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[TaskListResponse](t, rec)
		require.Len(t, body.Data, 1)
		assert.Equal(t, "mine", body.Data[0].Title)
		assert.Equal(t, 1, body.Total)
	})

	t.Run("defaults applied to pagination and sort", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")

		for i := 0; i < 3; i++ {
			env.seedTask(t, fmt.Sprintf("task-%d", i), "alice", category.ID, false, base.Add(time.Duration(i)*time.Hour))
		}

		rec := env.do(t, http.MethodGet, "/api/v1/tasks", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[TaskListResponse](t, rec)
		assert.Equal(t, 1, body.Page)
		assert.Equal(t, 10, body.Limit)
		// Newest first by default.
		assert.Equal(t, "task-2", body.Data[0].Title)
	})

	t.Run("window pagination keeps full total", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")

		for i := 0; i < 3; i++ {
			env.seedTask(t, fmt.Sprintf("task-%d", i), "alice", category.ID, false, base.Add(time.Duration(i)*time.Hour))
		}

		rec := env.do(t, http.MethodGet, "/api/v1/tasks?limit=1&page=2&sortOrder=asc", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[TaskListResponse](t, rec)
		require.Len(t, body.Data, 1)
		assert.Equal(t, "task-1", body.Data[0].Title)
		assert.Equal(t, 3, body.Total)
		assert.Equal(t, 2, body.Page)
		assert.Equal(t, 1, body.Limit)
	})

	t.Run("search matches exact substring in title or description", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")

		withDescription, err := domain.NewTask(
			"opaque title", strPtr("contains Report inside"),
			domain.PriorityLow, nil, false, "alice", category.ID)
		require.NoError(t, err)
		require.NoError(t, env.tasks.Create(context.Background(), withDescription))

		env.seedTask(t, "Report summary", "alice", category.ID, false, base)
		env.seedTask(t, "report lowercase", "alice", category.ID, false, base)
		env.seedTask(t, "unrelated", "alice", category.ID, false, base)

		rec := env.do(t, http.MethodGet, "/api/v1/tasks?search=Report", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[TaskListResponse](t, rec)
		// Case-sensitive: "report lowercase" does not match.
		assert.Equal(t, 2, body.Total)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")

		match := env.seedTask(t, "high done", "alice", category.ID, false, base)
		match.Priority = domain.PriorityHigh
		match.IsCompleted = true

		wrongPriority := env.seedTask(t, "low done", "alice", category.ID, false, base)
		wrongPriority.IsCompleted = true

		notDone := env.seedTask(t, "high pending", "alice", category.ID, false, base)
		notDone.Priority = domain.PriorityHigh

		rec := env.do(t, http.MethodGet, "/api/v1/tasks?priority=high&isCompleted=true", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[TaskListResponse](t, rec)
		require.Equal(t, 1, body.Total)
		assert.Equal(t, "high done", body.Data[0].Title)
	})

	t.Run("malformed filter values are 400", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")

		for _, path := range []string{
			"/api/v1/tasks?priority=urgent",
			"/api/v1/tasks?isCompleted=maybe",
			"/api/v1/tasks?page=0",
			"/api/v1/tasks?limit=-1",
			"/api/v1/tasks?sortOrder=sideways",
		} {
			assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, path, token, nil).Code, path)
		}
	})
}

func TestQueryPublicTasks(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	t.Run("anonymous callers see only public tasks", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedUser(t, "alice")
		category := env.seedCategory(t, "work", "alice")

		env.seedTask(t, "secret", "alice", category.ID, false, base)
		env.seedTask(t, "announcement", "alice", category.ID, true, base.Add(time.Hour))

		rec := env.do(t, http.MethodGet, "/api/v1/tasks/public", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[TaskListResponse](t, rec)
		require.Equal(t, 1, body.Total)
		assert.Equal(t, "announcement", body.Data[0].Title)
	})

	t.Run("empty result is an empty array, not null", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/api/v1/tasks/public", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("create category returns 201", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")

		rec := env.do(t, http.MethodPost, "/api/v1/categories", token, CreateCategoryRequest{Name: "errands"})
		require.Equal(t, http.StatusCreated, rec.Code)

		category := decodeBody[domain.Category](t, rec)
		assert.Equal(t, "errands", category.Name)
		assert.Equal(t, "alice", category.OwnerID)
	})

	t.Run("listing is owner-scoped and name-sorted", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")
		env.seedUser(t, "bob")

		env.seedCategory(t, "zebra", "alice")
		env.seedCategory(t, "alpha", "alice")
		env.seedCategory(t, "bobs-things", "bob")

		rec := env.do(t, http.MethodGet, "/api/v1/categories", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		categories := decodeBody[[]*domain.Category](t, rec)
		require.Len(t, categories, 2)
		assert.Equal(t, "alpha", categories[0].Name)
		assert.Equal(t, "zebra", categories[1].Name)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")

		rec := env.do(t, http.MethodPost, "/api/v1/categories", token, CreateCategoryRequest{Name: ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
