package farmland

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines farmland data access interface
type Repository interface {
	Create(ctx context.Context, f *Farmland) error
	GetByID(ctx context.Context, id uuid.UUID) (*Farmland, error)
	ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*Farmland, error)
	ListByStatus(ctx context.Context, status Status) ([]*Farmland, error)
	AttachDocument(ctx context.Context, id uuid.UUID, key string) error
	SetVerification(ctx context.Context, id uuid.UUID, status Status, reason string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates farmland repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *Farmland) error {
	query := `
		INSERT INTO farmlands (id, farmer_id, name, location, area_hectares, land_type, cultivation_method, status)
		VALUES (:id, :farmer_id, :name, :location, :area_hectares, :land_type, :cultivation_method, :status)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, f)
	if err != nil {
		return fmt.Errorf("create farmland: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&f.CreatedAt, &f.UpdatedAt); err != nil {
			return fmt.Errorf("scan farmland timestamps: %w", err)
		}
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Farmland, error) {
	var f Farmland
	err := r.db.GetContext(ctx, &f, `SELECT * FROM farmlands WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get farmland by id: %w", err)
	}
	return &f, nil
}

func (r *repository) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*Farmland, error) {
	lands := []*Farmland{}
	err := r.db.SelectContext(ctx, &lands, `
		SELECT * FROM farmlands WHERE farmer_id = $1 ORDER BY created_at DESC
	`, farmerID)
	if err != nil {
		return nil, fmt.Errorf("list farmlands by farmer: %w", err)
	}
	return lands, nil
}

func (r *repository) ListByStatus(ctx context.Context, status Status) ([]*Farmland, error) {
	lands := []*Farmland{}
	err := r.db.SelectContext(ctx, &lands, `
		SELECT * FROM farmlands WHERE status = $1 ORDER BY created_at DESC
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list farmlands by status: %w", err)
	}
	return lands, nil
}

func (r *repository) AttachDocument(ctx context.Context, id uuid.UUID, key string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE farmlands SET document_key = $1, updated_at = now() WHERE id = $2
	`, key, id)
	if err != nil {
		return fmt.Errorf("attach document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFarmlandNotFound
	}
	return nil
}

// SetVerification updates farmland status. The rejection reason is stored
// on rejection and cleared on any other transition.
func (r *repository) SetVerification(ctx context.Context, id uuid.UUID, status Status, reason string) error {
	var reasonArg interface{}
	if status == StatusRejected && reason != "" {
		reasonArg = reason
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE farmlands
		SET status = $1, rejection_reason = $2, updated_at = now()
		WHERE id = $3
	`, string(status), reasonArg, id)
	if err != nil {
		return fmt.Errorf("set farmland verification: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFarmlandNotFound
	}
	return nil
}
