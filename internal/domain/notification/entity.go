package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies a notification
type Type string

const (
	TypeUserApproved     Type = "user_approved"
	TypeUserRejected     Type = "user_rejected"
	TypeFarmlandApproved Type = "farmland_approved"
	TypeFarmlandRejected Type = "farmland_rejected"
	TypeSaleSettled      Type = "sale_settled"
	TypeAccountBlocked   Type = "account_blocked"
	TypeAccountUnblocked Type = "account_unblocked"
)

// Notification represents one in-app message (matches notifications table)
type Notification struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Type      Type      `db:"type"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}
