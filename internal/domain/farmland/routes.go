package farmland

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karbo/karbo-api/internal/middleware"
)

// Routes returns farmland router. All routes require auth; mutations are
// farmer-only, reads allow the owner or an admin.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/{id}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireFarmer())
			r.Post("/", h.Create)
			r.Get("/my", h.ListMine)
			r.Post("/{id}/documents", h.UploadDocument)
			r.Put("/{id}/documents", h.AttachDocument)
		})
	})

	return r
}
