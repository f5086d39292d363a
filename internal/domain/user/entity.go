package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user_role enum)
type Role string

const (
	RoleFarmer  Role = "farmer"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// VerificationStatus represents account verification state (matches verification_status enum)
type VerificationStatus string

const (
	StatusPendingVerification VerificationStatus = "pending_verification"
	StatusVerified            VerificationStatus = "verified"
	StatusRejected            VerificationStatus = "rejected"
)

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         Role      `db:"role"`

	VerificationStatus VerificationStatus `db:"verification_status"`
	RejectionReason    sql.NullString     `db:"rejection_reason"`
	IsBlocked          bool               `db:"is_blocked"`

	// Wallet balance in paise. All mutations go through the wallet ledger.
	WalletBalance int64 `db:"wallet_balance"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsFarmer returns true if user is a farmer
func (u *User) IsFarmer() bool {
	return u.Role == RoleFarmer
}

// IsCompany returns true if user is a company
func (u *User) IsCompany() bool {
	return u.Role == RoleCompany
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsVerified returns true if the account passed admin verification
func (u *User) IsVerified() bool {
	return u.VerificationStatus == StatusVerified
}

// CanCreateListing returns true if user can list carbon credits for sale
func (u *User) CanCreateListing() bool {
	return u.IsFarmer() && u.IsVerified() && !u.IsBlocked
}

// CanPurchase returns true if user can buy carbon credits
func (u *User) CanPurchase() bool {
	return u.IsCompany() && u.IsVerified() && !u.IsBlocked
}

// ValidRoles returns list of valid roles for registration
func ValidRoles() []Role {
	return []Role{RoleFarmer, RoleCompany}
}

// IsValidRole checks if role is valid for registration
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if string(r) == role {
			return true
		}
	}
	return false
}
