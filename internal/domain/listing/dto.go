package listing

import (
	"time"

	"github.com/google/uuid"
)

// CreateListingRequest for POST /listings
type CreateListingRequest struct {
	FarmlandID     string `json:"farmland_id" validate:"required,uuid"`
	CropType       string `json:"crop_type" validate:"required,min=2,max=100"`
	Description    string `json:"description" validate:"omitempty,max=2000"`
	TotalCredits   int64  `json:"total_credits" validate:"required,gt=0"`
	PricePerCredit int64  `json:"price_per_credit" validate:"required,gt=0"`
}

// UpdateListingRequest for PUT /listings/{id}
type UpdateListingRequest struct {
	CropType       string  `json:"crop_type" validate:"omitempty,min=2,max=100"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	TotalCredits   *int64  `json:"total_credits" validate:"omitempty,gt=0"`
	PricePerCredit *int64  `json:"price_per_credit" validate:"omitempty,gt=0"`
}

// UpdateStatusRequest for PATCH /listings/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active expired withdrawn"`
}

// ListingResponse represents a listing in API responses
type ListingResponse struct {
	ID               uuid.UUID `json:"id"`
	FarmerID         uuid.UUID `json:"farmer_id"`
	FarmlandID       uuid.UUID `json:"farmland_id"`
	CropType         string    `json:"crop_type"`
	Description      string    `json:"description,omitempty"`
	TotalCredits     int64     `json:"total_credits"`
	CreditsAvailable int64     `json:"credits_available"`
	PricePerCredit   int64     `json:"price_per_credit"`
	TotalValue       int64     `json:"total_value"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewListingResponse maps an entity onto the response shape
func NewListingResponse(l *Listing) ListingResponse {
	return ListingResponse{
		ID:               l.ID,
		FarmerID:         l.FarmerID,
		FarmlandID:       l.FarmlandID,
		CropType:         l.CropType,
		Description:      l.Description,
		TotalCredits:     l.TotalCredits,
		CreditsAvailable: l.CreditsAvailable,
		PricePerCredit:   l.PricePerCredit,
		TotalValue:       l.TotalValue,
		Status:           string(l.Status),
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
