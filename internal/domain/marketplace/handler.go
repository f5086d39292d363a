package marketplace

import (
	"net/http"

	"github.com/karbo/karbo-api/internal/pkg/response"
)

// Handler handles public catalog HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates marketplace handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Listings handles GET /marketplace/listings
func (h *Handler) Listings(w http.ResponseWriter, r *http.Request) {
	params := ParseSearchParams(r)

	items, total, err := h.service.Search(r.Context(), params)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, items, response.NewMeta(total, params.Page, params.Limit))
}
