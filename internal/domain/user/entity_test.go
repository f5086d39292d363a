package user_test

import (
	"testing"

	"github.com/karbo/karbo-api/internal/domain/user"
)

func TestCapabilities(t *testing.T) {
	tests := []struct {
		name             string
		role             user.Role
		status           user.VerificationStatus
		blocked          bool
		canCreateListing bool
		canPurchase      bool
	}{
		{"verified farmer", user.RoleFarmer, user.StatusVerified, false, true, false},
		{"pending farmer", user.RoleFarmer, user.StatusPendingVerification, false, false, false},
		{"rejected farmer", user.RoleFarmer, user.StatusRejected, false, false, false},
		{"blocked verified farmer", user.RoleFarmer, user.StatusVerified, true, false, false},
		{"verified company", user.RoleCompany, user.StatusVerified, false, false, true},
		{"pending company", user.RoleCompany, user.StatusPendingVerification, false, false, false},
		{"blocked verified company", user.RoleCompany, user.StatusVerified, true, false, false},
		{"admin", user.RoleAdmin, user.StatusVerified, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &user.User{
				Role:               tt.role,
				VerificationStatus: tt.status,
				IsBlocked:          tt.blocked,
			}
			if got := u.CanCreateListing(); got != tt.canCreateListing {
				t.Errorf("CanCreateListing() = %v, want %v", got, tt.canCreateListing)
			}
			if got := u.CanPurchase(); got != tt.canPurchase {
				t.Errorf("CanPurchase() = %v, want %v", got, tt.canPurchase)
			}
		})
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{"farmer", "company"} {
		if !user.IsValidRole(role) {
			t.Errorf("expected %s to be a valid registration role", role)
		}
	}
	for _, role := range []string{"admin", "model", ""} {
		if user.IsValidRole(role) {
			t.Errorf("expected %s to be rejected for registration", role)
		}
	}
}
