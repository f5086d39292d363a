package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository owns the wallet ledger and the balance column on users
type Repository interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Entry, int, error)

	// CreditInTx inserts a credit entry and increments the balance inside
	// the caller's transaction. Settlement uses this so payout and ledger
	// land atomically with the rest of its effects.
	CreditInTx(ctx context.Context, tx *sqlx.Tx, e *Entry) error

	// Withdraw debits the balance under a row lock, failing with
	// ErrInsufficientBalance rather than going negative.
	Withdraw(ctx context.Context, userID uuid.UUID, amount int64, description string) (*Entry, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates wallet repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, `SELECT wallet_balance FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

func (r *repository) ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM wallet_entries WHERE user_id = $1
	`, userID); err != nil {
		return nil, 0, fmt.Errorf("count wallet entries: %w", err)
	}

	entries := []*Entry{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM wallet_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallet entries: %w", err)
	}

	return entries, total, nil
}

func (r *repository) CreditInTx(ctx context.Context, tx *sqlx.Tx, e *Entry) error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	e.Type = EntryCredit

	if err := insertEntry(ctx, tx, e); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE users SET wallet_balance = wallet_balance + $1, updated_at = now() WHERE id = $2
	`, e.Amount, e.UserID)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) Withdraw(ctx context.Context, userID uuid.UUID, amount int64, description string) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var balance int64
	err = tx.GetContext(ctx, &balance, `
		SELECT wallet_balance FROM users WHERE id = $1 FOR UPDATE
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock balance: %w", err)
	}

	if balance < amount {
		return nil, ErrInsufficientBalance
	}

	e := &Entry{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Type:        EntryDebit,
		Description: description,
	}
	if err := insertEntry(ctx, tx, e); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE users SET wallet_balance = wallet_balance - $1, updated_at = now() WHERE id = $2
	`, amount, userID); err != nil {
		return nil, fmt.Errorf("debit balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return e, nil
}

func insertEntry(ctx context.Context, tx *sqlx.Tx, e *Entry) error {
	var txID interface{}
	if e.TransactionID.Valid {
		txID = e.TransactionID.UUID
	}

	err := tx.GetContext(ctx, &e.CreatedAt, `
		INSERT INTO wallet_entries (id, user_id, transaction_id, amount, type, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, e.ID, e.UserID, txID, e.Amount, string(e.Type), e.Description)
	if err != nil {
		return fmt.Errorf("insert wallet entry: %w", err)
	}
	return nil
}
