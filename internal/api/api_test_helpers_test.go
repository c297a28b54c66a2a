package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	apiMiddleware "github.com/Fakhri-abraar/taskdeck/internal/api/middleware"
	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/Fakhri-abraar/taskdeck/internal/mocks"
	"github.com/Fakhri-abraar/taskdeck/internal/service"
	"github.com/Fakhri-abraar/taskdeck/internal/service/auth"
	"github.com/Fakhri-abraar/taskdeck/internal/service/upload"
)

// testEnv wires the full route tree against in-memory stores so handler
// tests exercise routing, auth middleware, and JSON handling end to end.
type testEnv struct {
	users      *mocks.MockUserStore
	categories *mocks.MockCategoryStore
	tasks      *mocks.MockTaskStore
	router     http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := mocks.NewMockUserStore()
	categories := mocks.NewMockCategoryStore()
	tasks := mocks.NewMockTaskStore()

	hasher := auth.NewBcryptHasher()
	jwtService := &mocks.MockJWTService{}
	taskService := service.NewTaskService(tasks, categories, nil, nil)
	uploadService, err := upload.NewService(t.TempDir(), nil)
	require.NoError(t, err)

	authHandler := NewAuthHandler(users, jwtService, hasher, hasher, nil)
	categoryHandler := NewCategoryHandler(categories, nil)
	taskHandler := NewTaskHandler(taskService, nil)
	uploadHandler := NewUploadHandler(uploadService, nil)

	authMiddleware := apiMiddleware.NewAuthMiddleware(jwtService, users)

	r := chi.NewRouter()
	r.Use(apiMiddleware.TraceMiddleware)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/tasks/public", taskHandler.QueryPublic)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/categories", categoryHandler.Create)
			r.Get("/categories", categoryHandler.List)

			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.QueryMine)
			r.Get("/tasks/{id}", taskHandler.GetOne)
			r.Patch("/tasks/{id}", taskHandler.Patch)
			r.Delete("/tasks/{id}", taskHandler.Delete)

			r.Post("/files/upload", uploadHandler.Upload)
		})
	})

	return &testEnv{
		users:      users,
		categories: categories,
		tasks:      tasks,
		router:     r,
	}
}

// seedUser adds a user directly to the store. The matching bearer token
// is the mock JWT round-trip form.
func (env *testEnv) seedUser(t *testing.T, username string) string {
	t.Helper()

	user := &domain.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "$2a$10$seededseededseededseeded",
	}
	require.NoError(t, env.users.Create(context.Background(), user))
	return "test-token-" + username
}

func (env *testEnv) seedCategory(t *testing.T, name, owner string) *domain.Category {
	t.Helper()

	category, err := domain.NewCategory(name, owner)
	require.NoError(t, err)
	require.NoError(t, env.categories.Create(context.Background(), category))
	return category
}

// do performs a JSON request against the test router. A non-empty token
// is sent as a bearer credential.
func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
