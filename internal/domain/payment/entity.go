package payment

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks a checkout attempt (matches payment_order_status enum)
type OrderStatus string

const (
	OrderCreated OrderStatus = "created"
	OrderSettled OrderStatus = "settled"
	OrderFailed  OrderStatus = "failed"
)

// Order is the local stub for a gateway order (matches payment_orders table).
// It is written only after the gateway accepted the order and is the trusted
// source of quantity and amount at verification time. An abandoned checkout
// leaves the row in created forever, which is harmless.
type Order struct {
	ID             uuid.UUID   `db:"id"`
	GatewayOrderID string      `db:"gateway_order_id"`
	BuyerID        uuid.UUID   `db:"buyer_id"`
	ListingID      uuid.UUID   `db:"listing_id"`
	Quantity       int64       `db:"quantity"`
	Amount         int64       `db:"amount"`
	Currency       string      `db:"currency"`
	Status         OrderStatus `db:"status"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

// Transaction is one settled purchase (matches transactions table).
// Rows are immutable; amount_paid freezes the price at purchase time so
// later listing edits cannot rewrite history.
type Transaction struct {
	ID               uuid.UUID `db:"id"`
	BuyerID          uuid.UUID `db:"buyer_id"`
	FarmerID         uuid.UUID `db:"farmer_id"`
	ListingID        uuid.UUID `db:"listing_id"`
	CreditsPurchased int64     `db:"credits_purchased"`
	AmountPaid       int64     `db:"amount_paid"`
	GatewayOrderID   string    `db:"gateway_order_id"`
	GatewayPaymentID string    `db:"gateway_payment_id"`
	CreatedAt        time.Time `db:"created_at"`
}
