package wallet

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karbo/karbo-api/internal/middleware"
)

// Routes returns wallet router. The wallet belongs to farmers; companies
// pay through the gateway and never hold a balance.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware, middleware.RequireFarmer())
		r.Get("/balance", h.Balance)
		r.Get("/entries", h.Entries)
		r.Post("/withdraw", h.Withdraw)
	})

	return r
}
