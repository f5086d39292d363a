package marketplace

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// SearchParams are the catalog query parameters
type SearchParams struct {
	Search   string `json:"search"`
	MinPrice *int64 `json:"min_price,omitempty"`
	MaxPrice *int64 `json:"max_price,omitempty"`
	Sort     string `json:"sort"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

// ParseSearchParams reads catalog parameters from the query string,
// applying defaults and clamping out-of-range values
func ParseSearchParams(r *http.Request) SearchParams {
	q := r.URL.Query()

	p := SearchParams{
		Search: strings.TrimSpace(q.Get("search")),
		Sort:   q.Get("sort"),
		Page:   1,
		Limit:  defaultLimit,
	}

	if v, err := strconv.ParseInt(q.Get("min_price"), 10, 64); err == nil && v >= 0 {
		p.MinPrice = &v
	}
	if v, err := strconv.ParseInt(q.Get("max_price"), 10, 64); err == nil && v >= 0 {
		p.MaxPrice = &v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		p.Limit = v
		if p.Limit > maxLimit {
			p.Limit = maxLimit
		}
	}

	switch p.Sort {
	case "price_low", "price_high", "newest", "oldest":
	default:
		p.Sort = "newest"
	}

	return p
}

// Offset returns the SQL offset for the 1-indexed page
func (p SearchParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// CatalogItem is an active listing joined with its farmer and farmland
type CatalogItem struct {
	ID               uuid.UUID `db:"id" json:"id"`
	CropType         string    `db:"crop_type" json:"crop_type"`
	Description      string    `db:"description" json:"description,omitempty"`
	CreditsAvailable int64     `db:"credits_available" json:"credits_available"`
	PricePerCredit   int64     `db:"price_per_credit" json:"price_per_credit"`

	FarmerID   uuid.UUID `db:"farmer_id" json:"farmer_id"`
	FarmerName string    `db:"farmer_name" json:"farmer_name"`

	FarmlandID        uuid.UUID `db:"farmland_id" json:"farmland_id"`
	FarmlandName      string    `db:"farmland_name" json:"farmland_name"`
	Location          string    `db:"location" json:"location"`
	CultivationMethod string    `db:"cultivation_method" json:"cultivation_method"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
