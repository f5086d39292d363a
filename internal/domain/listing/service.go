package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/karbo/karbo-api/internal/domain/farmland"
	"github.com/karbo/karbo-api/internal/domain/user"
)

// Service handles listing business logic
type Service struct {
	repo         Repository
	userRepo     user.Repository
	farmlandRepo farmland.Repository
}

// NewService creates listing service
func NewService(repo Repository, userRepo user.Repository, farmlandRepo farmland.Repository) *Service {
	return &Service{
		repo:         repo,
		userRepo:     userRepo,
		farmlandRepo: farmlandRepo,
	}
}

// Create publishes a new listing. The caller must be a verified farmer and
// the source farmland must be theirs and verified.
func (s *Service) Create(ctx context.Context, farmerID uuid.UUID, req *CreateListingRequest) (*Listing, error) {
	u, err := s.userRepo.GetByID(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.CanCreateListing() {
		return nil, ErrOnlyFarmersCanList
	}

	farmlandID, err := uuid.Parse(req.FarmlandID)
	if err != nil {
		return nil, farmland.ErrFarmlandNotFound
	}

	f, err := s.farmlandRepo.GetByID(ctx, farmlandID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, farmland.ErrFarmlandNotFound
	}
	if f.FarmerID != farmerID {
		return nil, farmland.ErrNotOwner
	}
	if !f.IsVerified() {
		return nil, ErrFarmlandNotVerified
	}

	l := &Listing{
		ID:               uuid.New(),
		FarmerID:         farmerID,
		FarmlandID:       f.ID,
		CropType:         req.CropType,
		Description:      req.Description,
		TotalCredits:     req.TotalCredits,
		CreditsAvailable: req.TotalCredits,
		PricePerCredit:   req.PricePerCredit,
		TotalValue:       ComputeTotalValue(req.TotalCredits, req.PricePerCredit),
		Status:           StatusActive,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	log.Info().
		Str("listing_id", l.ID.String()).
		Str("farmer_id", farmerID.String()).
		Int64("total_credits", l.TotalCredits).
		Int64("price_per_credit", l.PricePerCredit).
		Msg("listing created")

	return l, nil
}

// GetByID returns a single listing
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListingNotFound
	}
	return l, nil
}

// ListMine returns the caller's listings, newest first
func (s *Service) ListMine(ctx context.Context, farmerID uuid.UUID) ([]*Listing, error) {
	return s.repo.ListByFarmer(ctx, farmerID)
}

// Update edits mutable fields. Changing totalCredits moves creditsAvailable
// by the same delta; the delta may not push availability below zero, so
// already-sold credits can never be retracted.
func (s *Service) Update(ctx context.Context, id, farmerID uuid.UUID, req *UpdateListingRequest) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListingNotFound
	}
	if l.FarmerID != farmerID {
		return nil, ErrNotOwner
	}

	if req.CropType != "" {
		l.CropType = req.CropType
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.PricePerCredit != nil {
		l.PricePerCredit = *req.PricePerCredit
	}

	var delta int64
	if req.TotalCredits != nil {
		delta = *req.TotalCredits - l.TotalCredits
		l.TotalCredits = *req.TotalCredits
	}

	l.TotalValue = ComputeTotalValue(l.TotalCredits, l.PricePerCredit)

	if err := s.repo.Update(ctx, l, delta); err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateStatus applies a manual lifecycle change (activate, expire)
func (s *Service) UpdateStatus(ctx context.Context, id, farmerID uuid.UUID, next Status) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListingNotFound
	}
	if l.FarmerID != farmerID {
		return nil, ErrNotOwner
	}

	if !l.CanTransitionTo(next) {
		return nil, ErrInvalidStatusChange
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	l.Status = next
	return l, nil
}

// Withdraw takes the listing off the catalog but keeps the row for the
// transaction ledger
func (s *Service) Withdraw(ctx context.Context, id, farmerID uuid.UUID) error {
	_, err := s.UpdateStatus(ctx, id, farmerID, StatusWithdrawn)
	return err
}
