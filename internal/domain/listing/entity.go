package listing

import (
	"time"

	"github.com/google/uuid"
)

// Status represents listing lifecycle state (matches listing_status enum)
type Status string

const (
	StatusActive    Status = "active"
	StatusSold      Status = "sold"
	StatusExpired   Status = "expired"
	StatusWithdrawn Status = "withdrawn"
)

// Listing represents carbon credits offered for sale (matches listings table).
// Listings are never hard-deleted; withdrawal keeps the row for the
// transaction ledger.
type Listing struct {
	ID         uuid.UUID `db:"id"`
	FarmerID   uuid.UUID `db:"farmer_id"`
	FarmlandID uuid.UUID `db:"farmland_id"`

	CropType    string `db:"crop_type"`
	Description string `db:"description"`

	// Credits are whole units. CreditsAvailable is decremented by
	// settlements and never goes below zero.
	TotalCredits     int64 `db:"total_credits"`
	CreditsAvailable int64 `db:"credits_available"`

	// PricePerCredit is in paise. TotalValue is always
	// total_credits * price_per_credit, recomputed on every mutation.
	PricePerCredit int64 `db:"price_per_credit"`
	TotalValue     int64 `db:"total_value"`

	Status Status `db:"status"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ComputeTotalValue derives the asking value of the whole listing
func ComputeTotalValue(totalCredits, pricePerCredit int64) int64 {
	return totalCredits * pricePerCredit
}

// IsActive returns true if the listing is purchasable
func (l *Listing) IsActive() bool {
	return l.Status == StatusActive
}

// CanTransitionTo reports whether a manual status change is allowed.
// sold is set only by settlement when the last credit is reserved.
func (l *Listing) CanTransitionTo(next Status) bool {
	switch l.Status {
	case StatusActive:
		return next == StatusExpired || next == StatusWithdrawn
	case StatusExpired:
		return next == StatusActive || next == StatusWithdrawn
	default:
		return false
	}
}
