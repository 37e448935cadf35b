// internal/matching/helpers_test.go
package matching

import (
	"testing"

	"marketplace-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func newTestEngine(t testing.TB) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultScoringConfig())
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return e
}

// approvedProvider serves cleaning in phoenix with no reviews and no experience.
func approvedProvider(id string) models.Provider {
	return models.Provider{
		ID:           id,
		BusinessName: "Provider " + id,
		Services:     []models.ServiceType{models.ServiceCleaning},
		Cities:       []models.City{models.CityPhoenix},
		PricingTier:  models.TierStandard,
		Status:       models.StatusApproved,
	}
}

// providerA is scenario 1: 4.9 rating, 12 years, 210 reviews, insured, standard.
func providerA() models.Provider {
	p := approvedProvider("provider-a")
	p.Rating = floatPtr(4.9)
	p.YearsExperience = 12
	p.TotalReviews = intPtr(210)
	p.InsuranceVerified = true
	p.PricingTier = models.TierStandard
	return p
}

// providerB is scenario 2: no rating, no reviews, no experience, budget.
func providerB() models.Provider {
	p := approvedProvider("provider-b")
	p.PricingTier = models.TierBudget
	return p
}

// providerE is scenario 6: 4.5 rating, 25 reviews, 5 years, uninsured, premium.
func providerE() models.Provider {
	p := approvedProvider("provider-e")
	p.Rating = floatPtr(4.5)
	p.TotalReviews = intPtr(25)
	p.YearsExperience = 5
	p.PricingTier = models.TierPremium
	return p
}
