package farmland

import (
	"time"

	"github.com/google/uuid"
)

// CreateFarmlandRequest for POST /farmlands
type CreateFarmlandRequest struct {
	Name              string  `json:"name" validate:"required,min=2,max=200"`
	Location          string  `json:"location" validate:"required,min=2,max=500"`
	AreaHectares      float64 `json:"area_hectares" validate:"required,gt=0"`
	LandType          string  `json:"land_type" validate:"required,land_type"`
	CultivationMethod string  `json:"cultivation_method" validate:"required,cultivation_method"`
}

// UploadDocumentRequest for POST /farmlands/{id}/documents
type UploadDocumentRequest struct {
	Filename    string `json:"filename" validate:"required,min=1,max=255"`
	ContentType string `json:"content_type" validate:"required,max=100"`
}

// UploadDocumentResponse carries the presigned PUT URL and the final key
type UploadDocumentResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}

// AttachDocumentRequest for PUT /farmlands/{id}/documents
type AttachDocumentRequest struct {
	Key string `json:"key" validate:"required,max=512"`
}

// FarmlandResponse represents farmland in API responses
type FarmlandResponse struct {
	ID                uuid.UUID `json:"id"`
	FarmerID          uuid.UUID `json:"farmer_id"`
	Name              string    `json:"name"`
	Location          string    `json:"location"`
	AreaHectares      float64   `json:"area_hectares"`
	LandType          string    `json:"land_type"`
	CultivationMethod string    `json:"cultivation_method"`
	DocumentKey       string    `json:"document_key,omitempty"`
	Status            string    `json:"status"`
	RejectionReason   string    `json:"rejection_reason,omitempty"`

	// Derived carbon estimate
	EstimatedCredits float64 `json:"estimated_credits"`
	EstimatedValue   int64   `json:"estimated_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFarmlandResponse maps an entity onto the response shape, attaching the
// carbon estimate derived from the policy
func NewFarmlandResponse(f *Farmland, policy CarbonPolicy) FarmlandResponse {
	credits := policy.EstimateCredits(f.AreaHectares, f.CultivationMethod)
	return FarmlandResponse{
		ID:                f.ID,
		FarmerID:          f.FarmerID,
		Name:              f.Name,
		Location:          f.Location,
		AreaHectares:      f.AreaHectares,
		LandType:          string(f.LandType),
		CultivationMethod: string(f.CultivationMethod),
		DocumentKey:       f.DocumentKey.String,
		Status:            string(f.Status),
		RejectionReason:   f.RejectionReason.String,
		EstimatedCredits:  credits,
		EstimatedValue:    policy.EstimateValue(credits),
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}
