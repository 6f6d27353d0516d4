package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mazid79/MemoraTodoApp/api/middleware"
	"github.com/mazid79/MemoraTodoApp/config"
	"github.com/mazid79/MemoraTodoApp/logger"
	"github.com/mazid79/MemoraTodoApp/tasks/store"
)

// NewRouter wires all routes and middleware for the presentation-facing
// HTTP surface.
func NewRouter(st *store.TaskStore, cfg *config.Config, lg *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(lg))

	r.Get("/health", NewHealthHandler(cfg, lg))

	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", NewSnapshotHandler(st, lg))
		r.Post("/tasks", NewAddTaskHandler(st, lg))
		r.Post("/tasks/{id}/toggle", NewToggleTaskHandler(st, lg))
		r.Put("/tasks/{id}", NewEditTaskHandler(st, lg))
		r.Delete("/tasks/{id}", NewDeleteTaskHandler(st, lg))
		r.Post("/theme/toggle", NewToggleThemeHandler(st, lg))
	})

	return r
}
