package listing

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/karbo/karbo-api/internal/domain/farmland"
	"github.com/karbo/karbo-api/internal/middleware"
	"github.com/karbo/karbo-api/internal/pkg/response"
	"github.com/karbo/karbo-api/internal/pkg/validator"
)

// Handler handles listing HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates listing handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /listings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	farmerID := middleware.GetUserID(r.Context())
	l, err := h.service.Create(r.Context(), farmerID, &req)
	if err != nil {
		switch err {
		case ErrOnlyFarmersCanList:
			response.Forbidden(w, "Only verified farmers can create listings")
		case farmland.ErrFarmlandNotFound:
			response.NotFound(w, "Farmland not found")
		case farmland.ErrNotOwner:
			response.Forbidden(w, "Not your farmland")
		case ErrFarmlandNotVerified:
			response.Forbidden(w, "Farmland must be verified before listing credits")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewListingResponse(l))
}

// GetByID handles GET /listings/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid listing ID")
		return
	}

	l, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Listing not found")
		return
	}

	response.OK(w, NewListingResponse(l))
}

// ListMine handles GET /listings/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	farmerID := middleware.GetUserID(r.Context())

	listings, err := h.service.ListMine(r.Context(), farmerID)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, NewListingResponse(l))
	}
	response.OK(w, out)
}

// Update handles PUT /listings/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid listing ID")
		return
	}

	var req UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	l, err := h.service.Update(r.Context(), id, middleware.GetUserID(r.Context()), &req)
	if err != nil {
		switch err {
		case ErrListingNotFound:
			response.NotFound(w, "Listing not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not your listing")
		case ErrInsufficientCredits:
			response.Conflict(w, "Cannot reduce credits below the amount already sold")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewListingResponse(l))
}

// UpdateStatus handles PATCH /listings/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid listing ID")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	l, err := h.service.UpdateStatus(r.Context(), id, middleware.GetUserID(r.Context()), Status(req.Status))
	if err != nil {
		switch err {
		case ErrListingNotFound:
			response.NotFound(w, "Listing not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not your listing")
		case ErrInvalidStatusChange:
			response.Conflict(w, "Status transition not allowed")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewListingResponse(l))
}

// Withdraw handles DELETE /listings/{id}
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid listing ID")
		return
	}

	if err := h.service.Withdraw(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		switch err {
		case ErrListingNotFound:
			response.NotFound(w, "Listing not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not your listing")
		case ErrInvalidStatusChange:
			response.Conflict(w, "Listing cannot be withdrawn in its current status")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OKMsg(w, "Listing withdrawn", nil)
}
