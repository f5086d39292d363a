package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines listing data access interface
type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*Listing, error)
	Update(ctx context.Context, l *Listing, creditsDelta int64) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// ReserveCredits atomically decrements credits_available inside the
	// caller's transaction. The listing flips to sold when the last credit
	// is reserved. Fails with ErrInsufficientCredits when the listing is
	// not active or has fewer credits than requested.
	ReserveCredits(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, qty int64) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates listing repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Listing) error {
	query := `
		INSERT INTO listings (id, farmer_id, farmland_id, crop_type, description,
		                      total_credits, credits_available, price_per_credit, total_value, status)
		VALUES (:id, :farmer_id, :farmland_id, :crop_type, :description,
		        :total_credits, :credits_available, :price_per_credit, :total_value, :status)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, l)
	if err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&l.CreatedAt, &l.UpdatedAt); err != nil {
			return fmt.Errorf("scan listing timestamps: %w", err)
		}
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var l Listing
	err := r.db.GetContext(ctx, &l, `SELECT * FROM listings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get listing by id: %w", err)
	}
	return &l, nil
}

func (r *repository) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*Listing, error) {
	listings := []*Listing{}
	err := r.db.SelectContext(ctx, &listings, `
		SELECT * FROM listings WHERE farmer_id = $1 ORDER BY created_at DESC
	`, farmerID)
	if err != nil {
		return nil, fmt.Errorf("list listings by farmer: %w", err)
	}
	return listings, nil
}

// Update rewrites the mutable fields and applies the credits delta to
// credits_available in the same statement, so concurrent settlements cannot
// be lost. The delta may not push credits_available below zero.
func (r *repository) Update(ctx context.Context, l *Listing, creditsDelta int64) error {
	var updated Listing
	err := r.db.GetContext(ctx, &updated, `
		UPDATE listings
		SET crop_type = $1,
		    description = $2,
		    total_credits = $3,
		    credits_available = credits_available + $4,
		    price_per_credit = $5,
		    total_value = $6,
		    updated_at = now()
		WHERE id = $7 AND credits_available + $4 >= 0
		RETURNING *
	`, l.CropType, l.Description, l.TotalCredits, creditsDelta, l.PricePerCredit, l.TotalValue, l.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInsufficientCredits
	}
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}

	*l = updated
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE listings SET status = $1, updated_at = now() WHERE id = $2
	`, string(status), id)
	if err != nil {
		return fmt.Errorf("update listing status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *repository) ReserveCredits(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, qty int64) error {
	var remaining int64
	err := tx.GetContext(ctx, &remaining, `
		UPDATE listings
		SET credits_available = credits_available - $2,
		    status = CASE WHEN credits_available - $2 = 0 THEN 'sold' ELSE status END,
		    updated_at = now()
		WHERE id = $1 AND status = 'active' AND credits_available >= $2
		RETURNING credits_available
	`, id, qty)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInsufficientCredits
	}
	if err != nil {
		return fmt.Errorf("reserve credits: %w", err)
	}
	return nil
}
