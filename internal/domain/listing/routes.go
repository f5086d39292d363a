package listing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karbo/karbo-api/internal/middleware"
)

// Routes returns listing router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware, middleware.RequireFarmer())
		r.Post("/", h.Create)
		r.Get("/my", h.ListMine)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Delete("/{id}", h.Withdraw)
	})

	return r
}
