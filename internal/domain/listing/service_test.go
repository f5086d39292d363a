package listing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/karbo/karbo-api/internal/domain/farmland"
	"github.com/karbo/karbo-api/internal/domain/listing"
	"github.com/karbo/karbo-api/internal/domain/user"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) SetVerification(_ context.Context, id uuid.UUID, status user.VerificationStatus, _ string) error {
	f.users[id].VerificationStatus = status
	return nil
}
func (f *fakeUserRepo) SetBlocked(_ context.Context, id uuid.UUID, blocked bool) error {
	f.users[id].IsBlocked = blocked
	return nil
}
func (f *fakeUserRepo) ListByStatus(context.Context, user.VerificationStatus) ([]*user.User, error) {
	return nil, nil
}

type fakeFarmlandRepo struct {
	lands map[uuid.UUID]*farmland.Farmland
}

func (f *fakeFarmlandRepo) Create(_ context.Context, l *farmland.Farmland) error {
	f.lands[l.ID] = l
	return nil
}
func (f *fakeFarmlandRepo) GetByID(_ context.Context, id uuid.UUID) (*farmland.Farmland, error) {
	return f.lands[id], nil
}
func (f *fakeFarmlandRepo) ListByFarmer(context.Context, uuid.UUID) ([]*farmland.Farmland, error) {
	return nil, nil
}
func (f *fakeFarmlandRepo) ListByStatus(context.Context, farmland.Status) ([]*farmland.Farmland, error) {
	return nil, nil
}
func (f *fakeFarmlandRepo) AttachDocument(context.Context, uuid.UUID, string) error { return nil }
func (f *fakeFarmlandRepo) SetVerification(_ context.Context, id uuid.UUID, status farmland.Status, _ string) error {
	f.lands[id].Status = status
	return nil
}

type fakeListingRepo struct {
	listings map[uuid.UUID]*listing.Listing
}

func (f *fakeListingRepo) Create(_ context.Context, l *listing.Listing) error {
	cp := *l
	f.listings[l.ID] = &cp
	return nil
}
func (f *fakeListingRepo) GetByID(_ context.Context, id uuid.UUID) (*listing.Listing, error) {
	if l, ok := f.listings[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeListingRepo) ListByFarmer(context.Context, uuid.UUID) ([]*listing.Listing, error) {
	return nil, nil
}
func (f *fakeListingRepo) Update(_ context.Context, l *listing.Listing, creditsDelta int64) error {
	stored, ok := f.listings[l.ID]
	if !ok {
		return listing.ErrListingNotFound
	}
	if stored.CreditsAvailable+creditsDelta < 0 {
		return listing.ErrInsufficientCredits
	}
	l.CreditsAvailable = stored.CreditsAvailable + creditsDelta
	cp := *l
	f.listings[l.ID] = &cp
	return nil
}
func (f *fakeListingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status listing.Status) error {
	l, ok := f.listings[id]
	if !ok {
		return listing.ErrListingNotFound
	}
	l.Status = status
	return nil
}
func (f *fakeListingRepo) ReserveCredits(_ context.Context, _ *sqlx.Tx, id uuid.UUID, qty int64) error {
	l, ok := f.listings[id]
	if !ok || l.Status != listing.StatusActive || l.CreditsAvailable < qty {
		return listing.ErrInsufficientCredits
	}
	l.CreditsAvailable -= qty
	if l.CreditsAvailable == 0 {
		l.Status = listing.StatusSold
	}
	return nil
}

type fixture struct {
	svc      *listing.Service
	listings *fakeListingRepo
	farmer   *user.User
	land     *farmland.Farmland
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	farmer := &user.User{
		ID:                 uuid.New(),
		Email:              "farmer@test.com",
		Role:               user.RoleFarmer,
		VerificationStatus: user.StatusVerified,
	}
	land := &farmland.Farmland{
		ID:       uuid.New(),
		FarmerID: farmer.ID,
		Name:     "North Field",
		Status:   farmland.StatusVerified,
	}

	users := &fakeUserRepo{users: map[uuid.UUID]*user.User{farmer.ID: farmer}}
	lands := &fakeFarmlandRepo{lands: map[uuid.UUID]*farmland.Farmland{land.ID: land}}
	listings := &fakeListingRepo{listings: map[uuid.UUID]*listing.Listing{}}

	return &fixture{
		svc:      listing.NewService(listings, users, lands),
		listings: listings,
		farmer:   farmer,
		land:     land,
	}
}

func TestCreateListing(t *testing.T) {
	f := newFixture(t)

	l, err := f.svc.Create(context.Background(), f.farmer.ID, &listing.CreateListingRequest{
		FarmlandID:     f.land.ID.String(),
		CropType:       "Rice",
		TotalCredits:   100,
		PricePerCredit: 5000,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if l.TotalValue != 500000 {
		t.Errorf("expected totalValue 500000, got %d", l.TotalValue)
	}
	if l.CreditsAvailable != 100 {
		t.Errorf("expected creditsAvailable 100, got %d", l.CreditsAvailable)
	}
	if l.Status != listing.StatusActive {
		t.Errorf("expected status active, got %s", l.Status)
	}
}

func TestCreateListingRequiresVerifiedFarmer(t *testing.T) {
	f := newFixture(t)
	f.farmer.VerificationStatus = user.StatusPendingVerification

	_, err := f.svc.Create(context.Background(), f.farmer.ID, &listing.CreateListingRequest{
		FarmlandID:     f.land.ID.String(),
		CropType:       "Rice",
		TotalCredits:   100,
		PricePerCredit: 5000,
	})
	if err != listing.ErrOnlyFarmersCanList {
		t.Fatalf("expected ErrOnlyFarmersCanList, got %v", err)
	}
}

func TestCreateListingRequiresVerifiedFarmland(t *testing.T) {
	f := newFixture(t)
	f.land.Status = farmland.StatusPending

	_, err := f.svc.Create(context.Background(), f.farmer.ID, &listing.CreateListingRequest{
		FarmlandID:     f.land.ID.String(),
		CropType:       "Rice",
		TotalCredits:   100,
		PricePerCredit: 5000,
	})
	if err != listing.ErrFarmlandNotVerified {
		t.Fatalf("expected ErrFarmlandNotVerified, got %v", err)
	}
}

func TestCreateListingRequiresOwnedFarmland(t *testing.T) {
	f := newFixture(t)
	f.land.FarmerID = uuid.New()

	_, err := f.svc.Create(context.Background(), f.farmer.ID, &listing.CreateListingRequest{
		FarmlandID:     f.land.ID.String(),
		CropType:       "Rice",
		TotalCredits:   100,
		PricePerCredit: 5000,
	})
	if err != farmland.ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestUpdateRecomputesTotalValue(t *testing.T) {
	f := newFixture(t)

	l, err := f.svc.Create(context.Background(), f.farmer.ID, &listing.CreateListingRequest{
		FarmlandID:     f.land.ID.String(),
		CropType:       "Rice",
		TotalCredits:   100,
		PricePerCredit: 5000,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newPrice := int64(6000)
	updated, err := f.svc.Update(context.Background(), l.ID, f.farmer.ID, &listing.UpdateListingRequest{
		PricePerCredit: &newPrice,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.TotalValue != 600000 {
		t.Errorf("expected totalValue 600000 after price change, got %d", updated.TotalValue)
	}
	if updated.CreditsAvailable != 100 {
		t.Errorf("price change must not touch availability, got %d", updated.CreditsAvailable)
	}
}

func TestUpdateCreditsAdjustsAvailability(t *testing.T) {
	f := newFixture(t)

	l, err := f.svc.Create(context.Background(), f.farmer.ID, &listing.CreateListingRequest{
		FarmlandID:     f.land.ID.String(),
		CropType:       "Rice",
		TotalCredits:   100,
		PricePerCredit: 5000,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Simulate 30 credits already sold.
	if err := f.listings.ReserveCredits(context.Background(), nil, l.ID, 30); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}

	newTotal := int64(120)
	updated, err := f.svc.Update(context.Background(), l.ID, f.farmer.ID, &listing.UpdateListingRequest{
		TotalCredits: &newTotal,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.CreditsAvailable != 90 {
		t.Errorf("expected 70+20=90 available, got %d", updated.CreditsAvailable)
	}
	if updated.TotalValue != 600000 {
		t.Errorf("expected totalValue 120*5000=600000, got %d", updated.TotalValue)
	}

	// Shrinking below the sold amount must fail: 30 sold, so total < 30
	// would push availability negative.
	tooSmall := int64(20)
	if _, err := f.svc.Update(context.Background(), l.ID, f.farmer.ID, &listing.UpdateListingRequest{
		TotalCredits: &tooSmall,
	}); err != listing.ErrInsufficientCredits {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	f := newFixture(t)

	l, err := f.svc.Create(context.Background(), f.farmer.ID, &listing.CreateListingRequest{
		FarmlandID:     f.land.ID.String(),
		CropType:       "Rice",
		TotalCredits:   100,
		PricePerCredit: 5000,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newPrice := int64(6000)
	if _, err := f.svc.Update(context.Background(), l.ID, uuid.New(), &listing.UpdateListingRequest{
		PricePerCredit: &newPrice,
	}); err != listing.ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestWithdraw(t *testing.T) {
	f := newFixture(t)

	l, err := f.svc.Create(context.Background(), f.farmer.ID, &listing.CreateListingRequest{
		FarmlandID:     f.land.ID.String(),
		CropType:       "Rice",
		TotalCredits:   100,
		PricePerCredit: 5000,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := f.svc.Withdraw(context.Background(), l.ID, f.farmer.ID); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}

	stored, _ := f.listings.GetByID(context.Background(), l.ID)
	if stored.Status != listing.StatusWithdrawn {
		t.Errorf("expected status withdrawn, got %s", stored.Status)
	}

	// Withdrawn is terminal.
	if err := f.svc.Withdraw(context.Background(), l.ID, f.farmer.ID); err != listing.ErrInvalidStatusChange {
		t.Fatalf("expected ErrInvalidStatusChange on second withdraw, got %v", err)
	}
}
