package farmland_test

import (
	"testing"

	"github.com/karbo/karbo-api/internal/domain/farmland"
)

func testPolicy() farmland.CarbonPolicy {
	return farmland.CarbonPolicy{
		Multipliers: map[string]float64{
			"conventional": 1.0,
			"organic":      1.5,
			"natural":      1.8,
			"agroforestry": 2.0,
		},
		PricePerUnit: 110000, // paise per credit
	}
}

func TestEstimateCredits(t *testing.T) {
	policy := testPolicy()

	tests := []struct {
		name   string
		area   float64
		method farmland.CultivationMethod
		want   float64
	}{
		{"conventional baseline", 10, farmland.MethodConventional, 10},
		{"organic multiplier", 10, farmland.MethodOrganic, 15},
		{"natural multiplier", 10, farmland.MethodNatural, 18},
		{"agroforestry multiplier", 10, farmland.MethodAgroforestry, 20},
		{"fractional area", 2.5, farmland.MethodOrganic, 3.75},
		{"unknown method falls back to conventional", 10, farmland.CultivationMethod("hydroponic"), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.EstimateCredits(tt.area, tt.method)
			if got != tt.want {
				t.Errorf("EstimateCredits(%v, %s) = %v, want %v", tt.area, tt.method, got, tt.want)
			}
		})
	}
}

func TestEstimateValue(t *testing.T) {
	policy := testPolicy()

	// 15 credits at 110000 paise each.
	if got := policy.EstimateValue(15); got != 1650000 {
		t.Errorf("EstimateValue(15) = %d, want 1650000", got)
	}
	if got := policy.EstimateValue(0); got != 0 {
		t.Errorf("EstimateValue(0) = %d, want 0", got)
	}
}
