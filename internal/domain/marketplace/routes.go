package marketplace

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the public marketplace router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/listings", h.Listings)

	return r
}
