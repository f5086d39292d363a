package farmland

import "errors"

var (
	ErrFarmlandNotFound    = errors.New("farmland not found")
	ErrNotOwner            = errors.New("not the owner of this farmland")
	ErrOnlyFarmersCanAdd   = errors.New("only verified farmers can add farmland")
	ErrInvalidStatusChange = errors.New("invalid farmland status transition")
)
