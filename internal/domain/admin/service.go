package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/karbo/karbo-api/internal/domain/farmland"
	"github.com/karbo/karbo-api/internal/domain/notification"
	"github.com/karbo/karbo-api/internal/domain/user"
	"github.com/karbo/karbo-api/internal/pkg/password"
)

// Service handles moderation and back-office operations
type Service struct {
	userRepo     user.Repository
	farmlandRepo farmland.Repository
	notifier     *notification.Service
}

// NewService creates admin service
func NewService(userRepo user.Repository, farmlandRepo farmland.Repository, notifier *notification.Service) *Service {
	return &Service{
		userRepo:     userRepo,
		farmlandRepo: farmlandRepo,
		notifier:     notifier,
	}
}

// PendingUsers lists accounts waiting for verification
func (s *Service) PendingUsers(ctx context.Context) ([]*user.User, error) {
	return s.userRepo.ListByStatus(ctx, user.StatusPendingVerification)
}

// ApproveUser verifies an account and clears any previous rejection reason
func (s *Service) ApproveUser(ctx context.Context, id uuid.UUID) error {
	if err := s.setUserVerification(ctx, id, user.StatusVerified, ""); err != nil {
		return err
	}
	s.notifier.NotifyUserDecision(ctx, id, true, "")
	return nil
}

// RejectUser rejects an account with a reason
func (s *Service) RejectUser(ctx context.Context, id uuid.UUID, reason string) error {
	if err := s.setUserVerification(ctx, id, user.StatusRejected, reason); err != nil {
		return err
	}
	s.notifier.NotifyUserDecision(ctx, id, false, reason)
	return nil
}

func (s *Service) setUserVerification(ctx context.Context, id uuid.UUID, status user.VerificationStatus, reason string) error {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrUserNotFound
	}
	if u.IsAdmin() {
		return ErrCannotModifyAdmin
	}

	if err := s.userRepo.SetVerification(ctx, id, status, reason); err != nil {
		return err
	}

	log.Info().
		Str("user_id", id.String()).
		Str("status", string(status)).
		Msg("user verification updated")
	return nil
}

// SetBlocked blocks or unblocks an account
func (s *Service) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrUserNotFound
	}
	if u.IsAdmin() {
		return ErrCannotModifyAdmin
	}

	if err := s.userRepo.SetBlocked(ctx, id, blocked); err != nil {
		return err
	}

	log.Info().
		Str("user_id", id.String()).
		Bool("blocked", blocked).
		Msg("user block flag updated")

	s.notifier.NotifyBlockChange(ctx, id, blocked)
	return nil
}

// CreateAdmin provisions a new admin account. Admins are verified from the
// start; they never go through the review queue.
func (s *Service) CreateAdmin(ctx context.Context, req *CreateAdminRequest) (*user.User, error) {
	existing, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, user.ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:                 uuid.New(),
		Email:              req.Email,
		PasswordHash:       hash,
		Name:               req.Name,
		Role:               user.RoleAdmin,
		VerificationStatus: user.StatusVerified,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Msg("admin account created")
	return u, nil
}

// PendingFarmlands lists parcels waiting for review
func (s *Service) PendingFarmlands(ctx context.Context) ([]*farmland.Farmland, error) {
	return s.farmlandRepo.ListByStatus(ctx, farmland.StatusPending)
}

// ApproveFarmland verifies a parcel and clears any previous rejection reason
func (s *Service) ApproveFarmland(ctx context.Context, id uuid.UUID) error {
	f, err := s.setFarmlandVerification(ctx, id, farmland.StatusVerified, "")
	if err != nil {
		return err
	}
	s.notifier.NotifyFarmlandDecision(ctx, f.FarmerID, f.Name, true, "")
	return nil
}

// RejectFarmland rejects a parcel with a reason
func (s *Service) RejectFarmland(ctx context.Context, id uuid.UUID, reason string) error {
	f, err := s.setFarmlandVerification(ctx, id, farmland.StatusRejected, reason)
	if err != nil {
		return err
	}
	s.notifier.NotifyFarmlandDecision(ctx, f.FarmerID, f.Name, false, reason)
	return nil
}

func (s *Service) setFarmlandVerification(ctx context.Context, id uuid.UUID, status farmland.Status, reason string) (*farmland.Farmland, error) {
	f, err := s.farmlandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, farmland.ErrFarmlandNotFound
	}

	if err := s.farmlandRepo.SetVerification(ctx, id, status, reason); err != nil {
		return nil, err
	}

	log.Info().
		Str("farmland_id", id.String()).
		Str("status", string(status)).
		Msg("farmland verification updated")
	return f, nil
}
