package farmland

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents farmland verification state (matches farmland_status enum)
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// LandType classifies the parcel
type LandType string

const (
	LandCropland    LandType = "cropland"
	LandOrchard     LandType = "orchard"
	LandPlantation  LandType = "plantation"
	LandPasture     LandType = "pasture"
	LandAgroforest  LandType = "agroforest"
)

// CultivationMethod determines the carbon multiplier
type CultivationMethod string

const (
	MethodConventional CultivationMethod = "conventional"
	MethodOrganic      CultivationMethod = "organic"
	MethodNatural      CultivationMethod = "natural"
	MethodAgroforestry CultivationMethod = "agroforestry"
)

// Farmland represents a farmer's land parcel (matches farmlands table).
// Parcels are never deleted; rejected ones keep their reason.
type Farmland struct {
	ID                uuid.UUID         `db:"id"`
	FarmerID          uuid.UUID         `db:"farmer_id"`
	Name              string            `db:"name"`
	Location          string            `db:"location"`
	AreaHectares      float64           `db:"area_hectares"`
	LandType          LandType          `db:"land_type"`
	CultivationMethod CultivationMethod `db:"cultivation_method"`
	DocumentKey       sql.NullString    `db:"document_key"`
	Status            Status            `db:"status"`
	RejectionReason   sql.NullString    `db:"rejection_reason"`
	CreatedAt         time.Time         `db:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at"`
}

// IsVerified returns true if the parcel passed admin review
func (f *Farmland) IsVerified() bool {
	return f.Status == StatusVerified
}

// CarbonPolicy converts parcel attributes into a carbon credit estimate.
// Multipliers are credits per hectare per cultivation method, the price is
// paise per credit. Both come from config.
type CarbonPolicy struct {
	Multipliers  map[string]float64
	PricePerUnit int64
}

// EstimateCredits returns the estimated annual carbon credits for a parcel
func (p CarbonPolicy) EstimateCredits(areaHectares float64, method CultivationMethod) float64 {
	mult, ok := p.Multipliers[string(method)]
	if !ok {
		mult = p.Multipliers[string(MethodConventional)]
	}
	return areaHectares * mult
}

// EstimateValue returns the estimated value in paise of the given credits
func (p CarbonPolicy) EstimateValue(credits float64) int64 {
	return int64(credits * float64(p.PricePerUnit))
}
