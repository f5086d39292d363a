package listing

import "errors"

var (
	ErrListingNotFound     = errors.New("listing not found")
	ErrNotOwner            = errors.New("not the owner of this listing")
	ErrOnlyFarmersCanList  = errors.New("only verified farmers can create listings")
	ErrFarmlandNotVerified = errors.New("farmland is not verified")
	ErrListingNotActive    = errors.New("listing is not active")
	ErrInsufficientCredits = errors.New("insufficient credits available")
	ErrInvalidStatusChange = errors.New("invalid listing status transition")
)
