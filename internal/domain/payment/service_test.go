package payment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/karbo/karbo-api/internal/domain/listing"
	"github.com/karbo/karbo-api/internal/domain/payment"
	"github.com/karbo/karbo-api/internal/domain/user"
	"github.com/karbo/karbo-api/internal/domain/wallet"
	"github.com/karbo/karbo-api/internal/pkg/razorpay"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*user.User, error) { return nil, nil }
func (f *fakeUserRepo) SetVerification(context.Context, uuid.UUID, user.VerificationStatus, string) error {
	return nil
}
func (f *fakeUserRepo) SetBlocked(context.Context, uuid.UUID, bool) error { return nil }
func (f *fakeUserRepo) ListByStatus(context.Context, user.VerificationStatus) ([]*user.User, error) {
	return nil, nil
}

type fakeListingRepo struct {
	listings map[uuid.UUID]*listing.Listing
}

func (f *fakeListingRepo) Create(_ context.Context, l *listing.Listing) error {
	f.listings[l.ID] = l
	return nil
}
func (f *fakeListingRepo) GetByID(_ context.Context, id uuid.UUID) (*listing.Listing, error) {
	return f.listings[id], nil
}
func (f *fakeListingRepo) ListByFarmer(context.Context, uuid.UUID) ([]*listing.Listing, error) {
	return nil, nil
}
func (f *fakeListingRepo) Update(context.Context, *listing.Listing, int64) error { return nil }
func (f *fakeListingRepo) UpdateStatus(context.Context, uuid.UUID, listing.Status) error {
	return nil
}
func (f *fakeListingRepo) ReserveCredits(context.Context, *sqlx.Tx, uuid.UUID, int64) error {
	return nil
}

type fakeWalletRepo struct{}

func (fakeWalletRepo) GetBalance(context.Context, uuid.UUID) (int64, error) { return 0, nil }
func (fakeWalletRepo) ListEntries(context.Context, uuid.UUID, int, int) ([]*wallet.Entry, int, error) {
	return nil, 0, nil
}
func (fakeWalletRepo) CreditInTx(context.Context, *sqlx.Tx, *wallet.Entry) error { return nil }
func (fakeWalletRepo) Withdraw(context.Context, uuid.UUID, int64, string) (*wallet.Entry, error) {
	return nil, nil
}

type fakePaymentRepo struct {
	orders        map[string]*payment.Order
	markedFailed  []string
	createdOrders int
}

func (f *fakePaymentRepo) BeginTx(context.Context) (*sqlx.Tx, error) {
	return nil, errors.New("no database in unit tests")
}
func (f *fakePaymentRepo) CreateOrder(_ context.Context, o *payment.Order) error {
	f.orders[o.GatewayOrderID] = o
	f.createdOrders++
	return nil
}
func (f *fakePaymentRepo) GetOrderForUpdate(_ context.Context, _ *sqlx.Tx, gatewayOrderID string) (*payment.Order, error) {
	return f.orders[gatewayOrderID], nil
}
func (f *fakePaymentRepo) MarkOrderFailed(_ context.Context, gatewayOrderID string) error {
	f.markedFailed = append(f.markedFailed, gatewayOrderID)
	return nil
}
func (f *fakePaymentRepo) MarkOrderSettledInTx(context.Context, *sqlx.Tx, uuid.UUID) error {
	return nil
}
func (f *fakePaymentRepo) InsertTransactionInTx(context.Context, *sqlx.Tx, *payment.Transaction) error {
	return nil
}
func (f *fakePaymentRepo) ListPurchases(context.Context, uuid.UUID, int, int) ([]*payment.Transaction, int, error) {
	return nil, 0, nil
}
func (f *fakePaymentRepo) ListSales(context.Context, uuid.UUID, int, int) ([]*payment.Transaction, int, error) {
	return nil, 0, nil
}

type fakeGateway struct {
	order *razorpay.Order
	err   error
	calls int
}

func (f *fakeGateway) CreateOrder(_ context.Context, req razorpay.CreateOrderRequest) (*razorpay.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	o := *f.order
	o.Amount = req.Amount
	return &o, nil
}

type checkoutFixture struct {
	svc     *payment.Service
	repo    *fakePaymentRepo
	gateway *fakeGateway
	company *user.User
	listing *listing.Listing
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	company := &user.User{
		ID:                 uuid.New(),
		Role:               user.RoleCompany,
		VerificationStatus: user.StatusVerified,
	}
	l := &listing.Listing{
		ID:               uuid.New(),
		FarmerID:         uuid.New(),
		CropType:         "Rice",
		TotalCredits:     100,
		CreditsAvailable: 100,
		PricePerCredit:   5000,
		Status:           listing.StatusActive,
	}

	repo := &fakePaymentRepo{orders: map[string]*payment.Order{}}
	gateway := &fakeGateway{order: &razorpay.Order{ID: "order_fake1", Currency: "INR", Status: "created"}}

	svc := payment.NewService(
		repo,
		&fakeListingRepo{listings: map[uuid.UUID]*listing.Listing{l.ID: l}},
		&fakeUserRepo{users: map[uuid.UUID]*user.User{company.ID: company}},
		fakeWalletRepo{},
		gateway,
		nil,
		"test_secret", "INR",
	)

	return &checkoutFixture{svc: svc, repo: repo, gateway: gateway, company: company, listing: l}
}

func TestCreateOrder(t *testing.T) {
	f := newCheckoutFixture(t)

	o, err := f.svc.CreateOrder(context.Background(), f.company.ID, &payment.CreateOrderRequest{
		ListingID: f.listing.ID.String(),
		Quantity:  30,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if o.Amount != 150000 {
		t.Errorf("expected amount 30*5000=150000, got %d", o.Amount)
	}
	if o.GatewayOrderID != "order_fake1" {
		t.Errorf("expected gateway order id order_fake1, got %s", o.GatewayOrderID)
	}
	if o.Status != payment.OrderCreated {
		t.Errorf("expected status created, got %s", o.Status)
	}
	if f.repo.createdOrders != 1 {
		t.Errorf("expected exactly one stub persisted, got %d", f.repo.createdOrders)
	}
}

func TestCreateOrderOnlyForCompanies(t *testing.T) {
	f := newCheckoutFixture(t)
	f.company.Role = user.RoleFarmer

	_, err := f.svc.CreateOrder(context.Background(), f.company.ID, &payment.CreateOrderRequest{
		ListingID: f.listing.ID.String(),
		Quantity:  10,
	})
	if err != payment.ErrOnlyCompaniesCanBuy {
		t.Fatalf("expected ErrOnlyCompaniesCanBuy, got %v", err)
	}
}

func TestCreateOrderHidesInactiveListings(t *testing.T) {
	f := newCheckoutFixture(t)
	f.listing.Status = listing.StatusWithdrawn

	_, err := f.svc.CreateOrder(context.Background(), f.company.ID, &payment.CreateOrderRequest{
		ListingID: f.listing.ID.String(),
		Quantity:  10,
	})
	if err != listing.ErrListingNotFound {
		t.Fatalf("expected ErrListingNotFound for non-active listing, got %v", err)
	}
}

func TestCreateOrderChecksAvailability(t *testing.T) {
	f := newCheckoutFixture(t)
	f.listing.CreditsAvailable = 5

	_, err := f.svc.CreateOrder(context.Background(), f.company.ID, &payment.CreateOrderRequest{
		ListingID: f.listing.ID.String(),
		Quantity:  10,
	})
	if err != listing.ErrInsufficientCredits {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if f.gateway.calls != 0 {
		t.Error("gateway must not be called when availability check fails")
	}
}

func TestCreateOrderGatewayFailureLeavesNoState(t *testing.T) {
	f := newCheckoutFixture(t)
	f.gateway.err = razorpay.ErrGatewayUnavailable

	_, err := f.svc.CreateOrder(context.Background(), f.company.ID, &payment.CreateOrderRequest{
		ListingID: f.listing.ID.String(),
		Quantity:  10,
	})
	if !errors.Is(err, razorpay.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	if f.repo.createdOrders != 0 {
		t.Error("no stub may be persisted when the gateway call fails")
	}
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	f := newCheckoutFixture(t)

	o, err := f.svc.CreateOrder(context.Background(), f.company.ID, &payment.CreateOrderRequest{
		ListingID: f.listing.ID.String(),
		Quantity:  30,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	_, err = f.svc.VerifyAndSettle(context.Background(), &payment.VerifyPaymentRequest{
		RazorpayOrderID:   o.GatewayOrderID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "deadbeef",
	})
	if err != payment.ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	if len(f.repo.markedFailed) != 1 || f.repo.markedFailed[0] != o.GatewayOrderID {
		t.Errorf("expected order %s marked failed, got %v", o.GatewayOrderID, f.repo.markedFailed)
	}
	if f.listing.CreditsAvailable != 100 {
		t.Errorf("rejected payment must not touch credits, got %d", f.listing.CreditsAvailable)
	}
}
