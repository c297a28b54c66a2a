package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Fakhri-abraar/taskdeck/internal/api"
	apiMiddleware "github.com/Fakhri-abraar/taskdeck/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordHasher,
		app.logger,
	)
	categoryHandler := api.NewCategoryHandler(app.categoryStore, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	uploadHandler := api.NewUploadHandler(app.uploadService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/tasks/public", taskHandler.QueryPublic)

		// Protected routes
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

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
