package wallet

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/karbo/karbo-api/internal/middleware"
	"github.com/karbo/karbo-api/internal/pkg/response"
	"github.com/karbo/karbo-api/internal/pkg/validator"
)

// Handler handles wallet HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates wallet handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Balance handles GET /wallet/balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	balance, err := h.service.Balance(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, BalanceResponse{Balance: balance})
}

// Entries handles GET /wallet/entries
func (h *Handler) Entries(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	entries, total, err := h.service.Entries(r.Context(), userID, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryResponse(e))
	}

	response.WithMeta(w, out, response.NewMeta(total, page, limit))
}

// Withdraw handles POST /wallet/withdraw
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	e, err := h.service.Withdraw(r.Context(), middleware.GetUserID(r.Context()), req.Amount)
	if err != nil {
		switch err {
		case ErrInsufficientBalance:
			response.Conflict(w, "Insufficient wallet balance")
		case ErrInvalidAmount:
			response.BadRequest(w, "Amount must be positive")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewEntryResponse(e))
}
