package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles wallet business logic
type Service struct {
	repo Repository
}

// NewService creates wallet service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Balance returns the user's current wallet balance in paise
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetBalance(ctx, userID)
}

// Entries returns a page of the user's ledger, newest first
func (s *Service) Entries(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Entry, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListEntries(ctx, userID, limit, (page-1)*limit)
}

// Withdraw moves money out of the wallet. The repository enforces the
// balance check under a row lock.
func (s *Service) Withdraw(ctx context.Context, userID uuid.UUID, amount int64) (*Entry, error) {
	e, err := s.repo.Withdraw(ctx, userID, amount, "Withdrawal to bank account")
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Int64("amount", amount).
		Msg("wallet withdrawal")

	return e, nil
}
