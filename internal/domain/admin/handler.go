package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/karbo/karbo-api/internal/domain/auth"
	"github.com/karbo/karbo-api/internal/domain/farmland"
	"github.com/karbo/karbo-api/internal/domain/user"
	"github.com/karbo/karbo-api/internal/pkg/response"
	"github.com/karbo/karbo-api/internal/pkg/validator"
)

// Handler handles admin HTTP requests
type Handler struct {
	service        *Service
	farmlandPolicy farmland.CarbonPolicy
}

// NewHandler creates admin handler
func NewHandler(service *Service, farmlandPolicy farmland.CarbonPolicy) *Handler {
	return &Handler{service: service, farmlandPolicy: farmlandPolicy}
}

// PendingUsers handles GET /admin/users/pending
func (h *Handler) PendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.PendingUsers(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]auth.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.NewUserResponse(u))
	}
	response.OK(w, out)
}

// ApproveUser handles POST /admin/users/{id}/approve
func (h *Handler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.ApproveUser(r.Context(), id); err != nil {
		h.writeUserError(w, err)
		return
	}

	response.OKMsg(w, "User approved", nil)
}

// RejectUser handles POST /admin/users/{id}/reject
func (h *Handler) RejectUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.RejectUser(r.Context(), id, req.Reason); err != nil {
		h.writeUserError(w, err)
		return
	}

	response.OKMsg(w, "User rejected", nil)
}

// SetBlocked handles POST /admin/users/{id}/block
func (h *Handler) SetBlocked(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if err := h.service.SetBlocked(r.Context(), id, req.Blocked); err != nil {
		h.writeUserError(w, err)
		return
	}

	if req.Blocked {
		response.OKMsg(w, "User blocked", nil)
	} else {
		response.OKMsg(w, "User unblocked", nil)
	}
}

// CreateAdmin handles POST /admin/users/create-admin
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	u, err := h.service.CreateAdmin(r.Context(), &req)
	if err != nil {
		switch err {
		case user.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already registered")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, auth.NewUserResponse(u))
}

// PendingFarmlands handles GET /admin/farmlands/pending
func (h *Handler) PendingFarmlands(w http.ResponseWriter, r *http.Request) {
	lands, err := h.service.PendingFarmlands(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]farmland.FarmlandResponse, 0, len(lands))
	for _, f := range lands {
		out = append(out, farmland.NewFarmlandResponse(f, h.farmlandPolicy))
	}
	response.OK(w, out)
}

// ApproveFarmland handles POST /admin/farmlands/{id}/approve
func (h *Handler) ApproveFarmland(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.ApproveFarmland(r.Context(), id); err != nil {
		h.writeFarmlandError(w, err)
		return
	}

	response.OKMsg(w, "Farmland approved", nil)
}

// RejectFarmland handles POST /admin/farmlands/{id}/reject
func (h *Handler) RejectFarmland(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.RejectFarmland(r.Context(), id, req.Reason); err != nil {
		h.writeFarmlandError(w, err)
		return
	}

	response.OKMsg(w, "Farmland rejected", nil)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeUserError(w http.ResponseWriter, err error) {
	switch err {
	case user.ErrUserNotFound:
		response.NotFound(w, "User not found")
	case ErrCannotModifyAdmin:
		response.Forbidden(w, "Admin accounts cannot be modified")
	default:
		response.InternalError(w)
	}
}

func (h *Handler) writeFarmlandError(w http.ResponseWriter, err error) {
	switch err {
	case farmland.ErrFarmlandNotFound:
		response.NotFound(w, "Farmland not found")
	default:
		response.InternalError(w)
	}
}
