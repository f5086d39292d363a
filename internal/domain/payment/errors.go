package payment

import "errors"

var (
	ErrOrderNotFound       = errors.New("payment order not found")
	ErrOnlyCompaniesCanBuy = errors.New("only verified companies can purchase credits")
	ErrInvalidSignature    = errors.New("invalid payment signature")
	ErrAlreadySettled      = errors.New("payment already settled")
)
