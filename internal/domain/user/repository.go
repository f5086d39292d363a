package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines user data access interface
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetVerification(ctx context.Context, id uuid.UUID, status VerificationStatus, reason string) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	ListByStatus(ctx context.Context, status VerificationStatus) ([]*User, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new user
func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, verification_status)
		VALUES (:id, :email, :password_hash, :name, :role, :verification_status)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, u)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
			return fmt.Errorf("scan user timestamps: %w", err)
		}
	}
	return nil
}

// GetByID returns user by ID, nil if not found
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// GetByEmail returns user by email, nil if not found
func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// SetVerification updates verification status. The rejection reason is
// stored on rejection and cleared on any other transition.
func (r *repository) SetVerification(ctx context.Context, id uuid.UUID, status VerificationStatus, reason string) error {
	var reasonArg interface{}
	if status == StatusRejected && reason != "" {
		reasonArg = reason
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET verification_status = $1, rejection_reason = $2, updated_at = now()
		WHERE id = $3
	`, string(status), reasonArg, id)
	if err != nil {
		return fmt.Errorf("set verification: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetBlocked toggles the blocked flag
func (r *repository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET is_blocked = $1, updated_at = now() WHERE id = $2
	`, blocked, id)
	if err != nil {
		return fmt.Errorf("set blocked: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListByStatus returns users with the given verification status, newest first.
// Admin accounts are excluded.
func (r *repository) ListByStatus(ctx context.Context, status VerificationStatus) ([]*User, error) {
	users := []*User{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT * FROM users
		WHERE verification_status = $1 AND role != 'admin'
		ORDER BY created_at DESC
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list users by status: %w", err)
	}
	return users, nil
}
