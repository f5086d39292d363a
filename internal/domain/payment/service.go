package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/karbo/karbo-api/internal/domain/listing"
	"github.com/karbo/karbo-api/internal/domain/user"
	"github.com/karbo/karbo-api/internal/domain/wallet"
	"github.com/karbo/karbo-api/internal/pkg/razorpay"
)

// Gateway abstracts the payment gateway order API
type Gateway interface {
	CreateOrder(ctx context.Context, req razorpay.CreateOrderRequest) (*razorpay.Order, error)
}

// Notifier lets settlement emit a payout notification without importing the
// notification package
type Notifier interface {
	NotifySale(ctx context.Context, farmerID uuid.UUID, credits, amount int64)
}

// Service handles checkout and settlement
type Service struct {
	repo        Repository
	listingRepo listing.Repository
	userRepo    user.Repository
	walletRepo  wallet.Repository
	gateway     Gateway
	notifier    Notifier // nil disables notifications

	keySecret string
	currency  string
}

// NewService creates payment service. keySecret is the gateway API secret
// used both for basic auth (inside the client) and signature verification.
func NewService(
	repo Repository,
	listingRepo listing.Repository,
	userRepo user.Repository,
	walletRepo wallet.Repository,
	gateway Gateway,
	notifier Notifier,
	keySecret, currency string,
) *Service {
	return &Service{
		repo:        repo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		walletRepo:  walletRepo,
		gateway:     gateway,
		notifier:    notifier,
		keySecret:   keySecret,
		currency:    currency,
	}
}

// CreateOrder starts a checkout. Nothing of consequence is persisted before
// the gateway accepts the order; a gateway failure leaves no local state, so
// the buyer can simply retry.
func (s *Service) CreateOrder(ctx context.Context, buyerID uuid.UUID, req *CreateOrderRequest) (*Order, error) {
	u, err := s.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.CanPurchase() {
		return nil, ErrOnlyCompaniesCanBuy
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, listing.ErrListingNotFound
	}

	l, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	// Non-active listings are invisible to buyers.
	if l == nil || !l.IsActive() {
		return nil, listing.ErrListingNotFound
	}

	if req.Quantity > l.CreditsAvailable {
		return nil, listing.ErrInsufficientCredits
	}

	amount := req.Quantity * l.PricePerCredit

	gwOrder, err := s.gateway.CreateOrder(ctx, razorpay.CreateOrderRequest{
		Amount:   amount,
		Currency: s.currency,
		Receipt:  fmt.Sprintf("listing-%s", l.ID),
	})
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:             uuid.New(),
		GatewayOrderID: gwOrder.ID,
		BuyerID:        buyerID,
		ListingID:      l.ID,
		Quantity:       req.Quantity,
		Amount:         amount,
		Currency:       s.currency,
		Status:         OrderCreated,
	}
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	log.Info().
		Str("gateway_order_id", o.GatewayOrderID).
		Str("buyer_id", buyerID.String()).
		Str("listing_id", l.ID.String()).
		Int64("quantity", o.Quantity).
		Int64("amount", o.Amount).
		Msg("payment order created")

	return o, nil
}

// VerifyAndSettle proves the payment via its HMAC signature, then applies
// all settlement effects in one transaction: reserve credits on the listing,
// record the immutable transaction, credit the farmer's wallet with its
// ledger entry, and mark the order settled. All four land or none do.
func (s *Service) VerifyAndSettle(ctx context.Context, req *VerifyPaymentRequest) (*Transaction, error) {
	if !razorpay.VerifyPaymentSignature(s.keySecret, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		if err := s.repo.MarkOrderFailed(ctx, req.RazorpayOrderID); err != nil {
			log.Warn().Err(err).Str("gateway_order_id", req.RazorpayOrderID).Msg("failed to mark order failed")
		}
		log.Warn().
			Str("gateway_order_id", req.RazorpayOrderID).
			Str("gateway_payment_id", req.RazorpayPaymentID).
			Msg("payment signature rejected")
		return nil, ErrInvalidSignature
	}

	txn, err := s.settle(ctx, req)
	if err != nil {
		// The payment itself was genuine. Keep the gateway ids in the log
		// so a failed settlement can be reconciled by hand.
		if err != ErrAlreadySettled && err != ErrOrderNotFound {
			log.Error().Err(err).
				Str("gateway_order_id", req.RazorpayOrderID).
				Str("gateway_payment_id", req.RazorpayPaymentID).
				Msg("settlement failed after verified payment")
		}
		return nil, err
	}

	log.Info().
		Str("transaction_id", txn.ID.String()).
		Str("gateway_payment_id", txn.GatewayPaymentID).
		Int64("credits", txn.CreditsPurchased).
		Int64("amount", txn.AmountPaid).
		Msg("payment settled")

	if s.notifier != nil {
		s.notifier.NotifySale(ctx, txn.FarmerID, txn.CreditsPurchased, txn.AmountPaid)
	}

	return txn, nil
}

func (s *Service) settle(ctx context.Context, req *VerifyPaymentRequest) (*Transaction, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	o, err := s.repo.GetOrderForUpdate(ctx, tx, req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.Status == OrderSettled {
		return nil, ErrAlreadySettled
	}

	// The owner is immutable on the listing, a plain read is enough.
	l, err := s.listingRepo.GetByID(ctx, o.ListingID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, listing.ErrListingNotFound
	}

	if err := s.listingRepo.ReserveCredits(ctx, tx, o.ListingID, o.Quantity); err != nil {
		return nil, err
	}

	txn := &Transaction{
		ID:               uuid.New(),
		BuyerID:          o.BuyerID,
		FarmerID:         l.FarmerID,
		ListingID:        o.ListingID,
		CreditsPurchased: o.Quantity,
		AmountPaid:       o.Amount,
		GatewayOrderID:   o.GatewayOrderID,
		GatewayPaymentID: req.RazorpayPaymentID,
	}
	if err := s.repo.InsertTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	entry := &wallet.Entry{
		ID:            uuid.New(),
		UserID:        l.FarmerID,
		TransactionID: uuid.NullUUID{UUID: txn.ID, Valid: true},
		Amount:        o.Amount,
		Description:   fmt.Sprintf("Sale of %d carbon credits", o.Quantity),
	}
	if err := s.walletRepo.CreditInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := s.repo.MarkOrderSettledInTx(ctx, tx, o.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return txn, nil
}

// Purchases returns the company's settled transactions, newest first
func (s *Service) Purchases(ctx context.Context, buyerID uuid.UUID, page, limit int) ([]*Transaction, int, error) {
	limit, offset := pageBounds(page, limit)
	return s.repo.ListPurchases(ctx, buyerID, limit, offset)
}

// Sales returns the farmer's settled transactions, newest first
func (s *Service) Sales(ctx context.Context, farmerID uuid.UUID, page, limit int) ([]*Transaction, int, error) {
	limit, offset := pageBounds(page, limit)
	return s.repo.ListSales(ctx, farmerID, limit, offset)
}

func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}
