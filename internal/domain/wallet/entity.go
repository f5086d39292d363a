package wallet

import (
	"time"

	"github.com/google/uuid"
)

// EntryType distinguishes money in from money out
type EntryType string

const (
	EntryCredit EntryType = "credit"
	EntryDebit  EntryType = "debit"
)

// Entry is one immutable row of the wallet ledger (matches wallet_entries
// table). Amount is always positive, in paise; the type carries the sign.
// The signed sum of a user's entries always equals users.wallet_balance,
// both are only ever written in the same transaction.
type Entry struct {
	ID            uuid.UUID     `db:"id"`
	UserID        uuid.UUID     `db:"user_id"`
	TransactionID uuid.NullUUID `db:"transaction_id"`
	Amount        int64         `db:"amount"`
	Type          EntryType     `db:"type"`
	Description   string        `db:"description"`
	CreatedAt     time.Time     `db:"created_at"`
}

// SignedAmount returns the amount with the ledger sign applied
func (e *Entry) SignedAmount() int64 {
	if e.Type == EntryDebit {
		return -e.Amount
	}
	return e.Amount
}
