package farmland

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/karbo/karbo-api/internal/middleware"
	"github.com/karbo/karbo-api/internal/pkg/response"
	"github.com/karbo/karbo-api/internal/pkg/validator"
)

// Handler handles farmland HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates farmland handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /farmlands
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFarmlandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	farmerID := middleware.GetUserID(r.Context())
	f, err := h.service.Create(r.Context(), farmerID, &req)
	if err != nil {
		switch err {
		case ErrOnlyFarmersCanAdd:
			response.Forbidden(w, "Only verified farmers can add farmland")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewFarmlandResponse(f, h.service.Policy()))
}

// ListMine handles GET /farmlands/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	farmerID := middleware.GetUserID(r.Context())

	lands, err := h.service.ListMine(r.Context(), farmerID)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]FarmlandResponse, 0, len(lands))
	for _, f := range lands {
		out = append(out, NewFarmlandResponse(f, h.service.Policy()))
	}
	response.OK(w, out)
}

// GetByID handles GET /farmlands/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid farmland ID")
		return
	}

	ctx := r.Context()
	f, err := h.service.GetByID(ctx, id, middleware.GetUserID(ctx), middleware.GetRole(ctx))
	if err != nil {
		switch err {
		case ErrFarmlandNotFound:
			response.NotFound(w, "Farmland not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not your farmland")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewFarmlandResponse(f, h.service.Policy()))
}

// UploadDocument handles POST /farmlands/{id}/documents
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid farmland ID")
		return
	}

	var req UploadDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	resp, err := h.service.DocumentUploadURL(r.Context(), id, middleware.GetUserID(r.Context()), &req)
	if err != nil {
		switch err {
		case ErrFarmlandNotFound:
			response.NotFound(w, "Farmland not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not your farmland")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// AttachDocument handles PUT /farmlands/{id}/documents
func (h *Handler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid farmland ID")
		return
	}

	var req AttachDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	f, err := h.service.AttachDocument(r.Context(), id, middleware.GetUserID(r.Context()), req.Key)
	if err != nil {
		switch err {
		case ErrFarmlandNotFound:
			response.NotFound(w, "Farmland not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not your farmland")
		default:
			response.BadRequest(w, "Document is not available")
		}
		return
	}

	response.OK(w, NewFarmlandResponse(f, h.service.Policy()))
}
