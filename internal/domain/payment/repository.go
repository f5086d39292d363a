package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository handles payment order and transaction persistence
type Repository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)

	CreateOrder(ctx context.Context, o *Order) error
	// GetOrderForUpdate locks the order stub row for the settlement
	// transaction. Returns nil when the gateway order id is unknown.
	GetOrderForUpdate(ctx context.Context, tx *sqlx.Tx, gatewayOrderID string) (*Order, error)
	MarkOrderFailed(ctx context.Context, gatewayOrderID string) error
	MarkOrderSettledInTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error

	// InsertTransactionInTx inserts the immutable purchase record. A
	// duplicate gateway_payment_id maps to ErrAlreadySettled.
	InsertTransactionInTx(ctx context.Context, tx *sqlx.Tx, t *Transaction) error

	ListPurchases(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*Transaction, int, error)
	ListSales(ctx context.Context, farmerID uuid.UUID, limit, offset int) ([]*Transaction, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates payment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	query := `
		INSERT INTO payment_orders (id, gateway_order_id, buyer_id, listing_id, quantity, amount, currency, status)
		VALUES (:id, :gateway_order_id, :buyer_id, :listing_id, :quantity, :amount, :currency, :status)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, o)
	if err != nil {
		return fmt.Errorf("create payment order: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
			return fmt.Errorf("scan payment order timestamps: %w", err)
		}
	}
	return nil
}

func (r *repository) GetOrderForUpdate(ctx context.Context, tx *sqlx.Tx, gatewayOrderID string) (*Order, error) {
	var o Order
	err := tx.GetContext(ctx, &o, `
		SELECT * FROM payment_orders WHERE gateway_order_id = $1 FOR UPDATE
	`, gatewayOrderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get payment order: %w", err)
	}
	return &o, nil
}

func (r *repository) MarkOrderFailed(ctx context.Context, gatewayOrderID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_orders SET status = 'failed', updated_at = now()
		WHERE gateway_order_id = $1 AND status != 'settled'
	`, gatewayOrderID)
	if err != nil {
		return fmt.Errorf("mark order failed: %w", err)
	}
	return nil
}

func (r *repository) MarkOrderSettledInTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE payment_orders SET status = 'settled', updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("mark order settled: %w", err)
	}
	return nil
}

func (r *repository) InsertTransactionInTx(ctx context.Context, tx *sqlx.Tx, t *Transaction) error {
	err := tx.GetContext(ctx, &t.CreatedAt, `
		INSERT INTO transactions (id, buyer_id, farmer_id, listing_id, credits_purchased, amount_paid, gateway_order_id, gateway_payment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, t.ID, t.BuyerID, t.FarmerID, t.ListingID, t.CreditsPurchased, t.AmountPaid, t.GatewayOrderID, t.GatewayPaymentID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadySettled
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *repository) ListPurchases(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*Transaction, int, error) {
	return r.listTransactions(ctx, "buyer_id", buyerID, limit, offset)
}

func (r *repository) ListSales(ctx context.Context, farmerID uuid.UUID, limit, offset int) ([]*Transaction, int, error) {
	return r.listTransactions(ctx, "farmer_id", farmerID, limit, offset)
}

func (r *repository) listTransactions(ctx context.Context, column string, id uuid.UUID, limit, offset int) ([]*Transaction, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM transactions WHERE %s = $1`, column)
	if err := r.db.GetContext(ctx, &total, countQuery, id); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM transactions
		WHERE %s = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, column)

	txs := []*Transaction{}
	if err := r.db.SelectContext(ctx, &txs, query, id, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}

	return txs, total, nil
}
