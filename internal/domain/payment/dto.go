package payment

import (
	"time"

	"github.com/google/uuid"
)

// CreateOrderRequest for POST /payments/create-order
type CreateOrderRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderResponse carries what the client needs to open the gateway
// checkout widget
type CreateOrderResponse struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

// VerifyPaymentRequest for POST /payments/verify-payment. Field names follow
// the gateway's checkout callback payload.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// TransactionResponse represents a settled purchase in API responses
type TransactionResponse struct {
	ID               uuid.UUID `json:"id"`
	BuyerID          uuid.UUID `json:"buyer_id"`
	FarmerID         uuid.UUID `json:"farmer_id"`
	ListingID        uuid.UUID `json:"listing_id"`
	CreditsPurchased int64     `json:"credits_purchased"`
	AmountPaid       int64     `json:"amount_paid"`
	GatewayOrderID   string    `json:"gateway_order_id"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewTransactionResponse maps a transaction onto the response shape
func NewTransactionResponse(t *Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID,
		BuyerID:          t.BuyerID,
		FarmerID:         t.FarmerID,
		ListingID:        t.ListingID,
		CreditsPurchased: t.CreditsPurchased,
		AmountPaid:       t.AmountPaid,
		GatewayOrderID:   t.GatewayOrderID,
		GatewayPaymentID: t.GatewayPaymentID,
		CreatedAt:        t.CreatedAt,
	}
}
