package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service creates and serves in-app notifications. Emitting is always
// best-effort: a failed insert is logged and swallowed so it can never
// break the operation that triggered it.
type Service struct {
	repo Repository
}

// NewService creates notification service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) emit(ctx context.Context, userID uuid.UUID, typ Type, title, body string) {
	n := &Notification{
		ID:     uuid.New(),
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Warn().Err(err).
			Str("user_id", userID.String()).
			Str("type", string(typ)).
			Msg("failed to emit notification")
	}
}

// NotifySale tells a farmer their credits sold
func (s *Service) NotifySale(ctx context.Context, farmerID uuid.UUID, credits, amount int64) {
	s.emit(ctx, farmerID, TypeSaleSettled,
		"Carbon credits sold",
		fmt.Sprintf("%d credits sold for ₹%d.%02d, the amount was credited to your wallet.", credits, amount/100, amount%100))
}

// NotifyUserDecision tells a user about their verification outcome
func (s *Service) NotifyUserDecision(ctx context.Context, userID uuid.UUID, approved bool, reason string) {
	if approved {
		s.emit(ctx, userID, TypeUserApproved,
			"Account verified",
			"Your account has been verified. You now have full access to the marketplace.")
		return
	}
	s.emit(ctx, userID, TypeUserRejected,
		"Account verification rejected",
		fmt.Sprintf("Your account verification was rejected: %s", reason))
}

// NotifyFarmlandDecision tells a farmer about a parcel review outcome
func (s *Service) NotifyFarmlandDecision(ctx context.Context, farmerID uuid.UUID, farmlandName string, approved bool, reason string) {
	if approved {
		s.emit(ctx, farmerID, TypeFarmlandApproved,
			"Farmland verified",
			fmt.Sprintf("Your farmland %q has been verified. You can now list its carbon credits.", farmlandName))
		return
	}
	s.emit(ctx, farmerID, TypeFarmlandRejected,
		"Farmland rejected",
		fmt.Sprintf("Your farmland %q was rejected: %s", farmlandName, reason))
}

// NotifyBlockChange tells a user their account was blocked or unblocked
func (s *Service) NotifyBlockChange(ctx context.Context, userID uuid.UUID, blocked bool) {
	if blocked {
		s.emit(ctx, userID, TypeAccountBlocked,
			"Account blocked",
			"Your account has been blocked by an administrator.")
		return
	}
	s.emit(ctx, userID, TypeAccountUnblocked,
		"Account unblocked",
		"Your account has been unblocked.")
}

// List returns a page of the user's notifications, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
}

// UnreadCount returns the number of unread notifications
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

// MarkRead marks one notification as read
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, id)
}

// MarkAllRead marks every notification as read
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
