package wallet

import (
	"time"

	"github.com/google/uuid"
)

// WithdrawRequest for POST /wallet/withdraw
type WithdrawRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// BalanceResponse for GET /wallet/balance
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// EntryResponse represents one ledger row in API responses
type EntryResponse struct {
	ID            uuid.UUID `json:"id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Amount        int64     `json:"amount"`
	Type          string    `json:"type"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewEntryResponse maps a ledger entry onto the response shape
func NewEntryResponse(e *Entry) EntryResponse {
	resp := EntryResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Type:        string(e.Type),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
	if e.TransactionID.Valid {
		resp.TransactionID = e.TransactionID.UUID.String()
	}
	return resp
}
