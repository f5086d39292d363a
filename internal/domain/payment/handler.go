package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/karbo/karbo-api/internal/domain/listing"
	"github.com/karbo/karbo-api/internal/middleware"
	"github.com/karbo/karbo-api/internal/pkg/razorpay"
	"github.com/karbo/karbo-api/internal/pkg/response"
	"github.com/karbo/karbo-api/internal/pkg/validator"
)

// Handler handles payment HTTP requests
type Handler struct {
	service *Service
	keyID   string
}

// NewHandler creates payment handler. keyID is the public gateway key the
// client needs to open checkout.
func NewHandler(service *Service, keyID string) *Handler {
	return &Handler{service: service, keyID: keyID}
}

// CreateOrder handles POST /payments/create-order
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	buyerID := middleware.GetUserID(r.Context())
	o, err := h.service.CreateOrder(r.Context(), buyerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrOnlyCompaniesCanBuy):
			response.Forbidden(w, "Only verified companies can purchase credits")
		case errors.Is(err, listing.ErrListingNotFound):
			response.NotFound(w, "Listing not found")
		case errors.Is(err, listing.ErrInsufficientCredits):
			response.Conflict(w, "Not enough credits available")
		case errors.Is(err, razorpay.ErrGatewayUnavailable):
			response.BadGateway(w, "Payment gateway unavailable, please retry")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, CreateOrderResponse{
		GatewayOrderID: o.GatewayOrderID,
		Amount:         o.Amount,
		Currency:       o.Currency,
		KeyID:          h.keyID,
	})
}

// VerifyPayment handles POST /payments/verify-payment
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	txn, err := h.service.VerifyAndSettle(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSignature):
			response.BadRequest(w, "Payment signature verification failed")
		case errors.Is(err, ErrOrderNotFound):
			response.NotFound(w, "Payment order not found")
		case errors.Is(err, ErrAlreadySettled):
			response.Conflict(w, "Payment already settled")
		case errors.Is(err, listing.ErrInsufficientCredits):
			response.Conflict(w, "Not enough credits available")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewTransactionResponse(txn))
}

// Purchases handles GET /payments/purchases
func (h *Handler) Purchases(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	txs, total, err := h.service.Purchases(r.Context(), middleware.GetUserID(r.Context()), page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, transactionResponses(txs), response.NewMeta(total, page, limit))
}

// Sales handles GET /payments/sales
func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	txs, total, err := h.service.Sales(r.Context(), middleware.GetUserID(r.Context()), page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, transactionResponses(txs), response.NewMeta(total, page, limit))
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

func transactionResponses(txs []*Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}
