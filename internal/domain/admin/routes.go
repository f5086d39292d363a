package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karbo/karbo-api/internal/middleware"
)

// Routes returns admin router, fully behind auth + admin role
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware, middleware.RequireAdmin())

		r.Route("/users", func(r chi.Router) {
			r.Get("/pending", h.PendingUsers)
			r.Post("/create-admin", h.CreateAdmin)
			r.Post("/{id}/approve", h.ApproveUser)
			r.Post("/{id}/reject", h.RejectUser)
			r.Post("/{id}/block", h.SetBlocked)
		})

		r.Route("/farmlands", func(r chi.Router) {
			r.Get("/pending", h.PendingFarmlands)
			r.Post("/{id}/approve", h.ApproveFarmland)
			r.Post("/{id}/reject", h.RejectFarmland)
		})
	})

	return r
}
