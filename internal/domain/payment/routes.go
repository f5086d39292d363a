package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karbo/karbo-api/internal/middleware"
)

// Routes returns payment router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCompany())
			r.Post("/create-order", h.CreateOrder)
			r.Post("/verify-payment", h.VerifyPayment)
			r.Get("/purchases", h.Purchases)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireFarmer())
			r.Get("/sales", h.Sales)
		})
	})

	return r
}
