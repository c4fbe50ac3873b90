package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BuzzLyutic/taskify/pkg/respond"
)

// NewRouter собирает маршруты API вокруг обработчика задач
func NewRouter(h *TaskHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Post("/reorder", h.Reorder)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Post("/{id}/toggle", h.Toggle)
		r.Delete("/{id}", h.Delete)
	})

	r.Get("/api/stats", h.Stats)
	r.Get("/api/state", h.State)

	return r
}
