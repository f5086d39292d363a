package listing_test

import (
	"testing"

	"github.com/karbo/karbo-api/internal/domain/listing"
)

func TestComputeTotalValue(t *testing.T) {
	tests := []struct {
		name           string
		totalCredits   int64
		pricePerCredit int64
		want           int64
	}{
		{"100 credits at 5000 paise", 100, 5000, 500000},
		{"price raised to 6000 paise", 100, 6000, 600000},
		{"single credit", 1, 110000, 110000},
		{"zero credits", 0, 5000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := listing.ComputeTotalValue(tt.totalCredits, tt.pricePerCredit)
			if got != tt.want {
				t.Errorf("ComputeTotalValue(%d, %d) = %d, want %d", tt.totalCredits, tt.pricePerCredit, got, tt.want)
			}
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from listing.Status
		to   listing.Status
		want bool
	}{
		{listing.StatusActive, listing.StatusExpired, true},
		{listing.StatusActive, listing.StatusWithdrawn, true},
		{listing.StatusActive, listing.StatusSold, false},
		{listing.StatusActive, listing.StatusActive, false},
		{listing.StatusExpired, listing.StatusActive, true},
		{listing.StatusExpired, listing.StatusWithdrawn, true},
		{listing.StatusExpired, listing.StatusSold, false},
		{listing.StatusSold, listing.StatusActive, false},
		{listing.StatusSold, listing.StatusWithdrawn, false},
		{listing.StatusWithdrawn, listing.StatusActive, false},
	}

	for _, tt := range tests {
		l := &listing.Listing{Status: tt.from}
		if got := l.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
