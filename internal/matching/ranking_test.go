// internal/matching/ranking_test.go
package matching

import (
	"fmt"
	"testing"

	"marketplace-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ranked []models.MatchedProvider) []string {
	out := make([]string, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, m.ID)
	}
	return out
}

func TestEngine_Rank(t *testing.T) {
	engine := newTestEngine(t)

	providerD := approvedProvider("provider-d")
	providerD.Rating = floatPtr(3.0)
	providerD.YearsExperience = 5
	providerD.InsuranceVerified = true

	ranked := engine.Rank([]models.Provider{providerA(), providerB(), providerD})

	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"provider-a", "provider-d", "provider-b"}, ids(ranked))
	assert.Equal(t, []int{100, 65, 30}, []int{ranked[0].MatchScore, ranked[1].MatchScore, ranked[2].MatchScore})
}

func TestEngine_Rank_NonIncreasing(t *testing.T) {
	engine := newTestEngine(t)

	pool := make([]models.Provider, 0, 40)
	for i := 0; i < 40; i++ {
		p := approvedProvider(fmt.Sprintf("p-%02d", i))
		p.Rating = floatPtr(float64(i%11) * 0.5)
		p.YearsExperience = i % 13
		p.TotalReviews = intPtr((i * 7) % 60)
		p.InsuranceVerified = i%3 == 0
		pool = append(pool, p)
	}

	ranked := engine.Rank(pool)
	require.Len(t, ranked, len(pool))
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].MatchScore, ranked[i].MatchScore, "index %d", i)
	}
}

func TestEngine_Rank_TieBreak(t *testing.T) {
	engine := newTestEngine(t)

	// x and y score 30 + 25 = 55.
	x :=approvedProvider("x")
	x.Rating = floatPtr(5)

	y := approvedProvider("y")
	y.Rating = floatPtr(5)

	z := approvedProvider("z")
	z.Rating = floatPtr(3)
	z.InsuranceVerified = true
	z.TotalReviews = intPtr(1)

	forward := engine.Rank([]models.Provider{y, x, z})
	reverse := engine.Rank([]models.Provider{z, x, y})

	// z scores 30 + 15 + 0 + 0.3 + 10 = 55.3 -> 55, more reviews wins the tie.
	assert.Equal(t, []string{"z", "x", "y"}, ids(forward))
	assert.Equal(t, ids(forward), ids(reverse))
}

func TestEngine_Rank_SkipsNonApproved(t *testing.T) {
	engine := newTestEngine(t)

	pending := providerA()
	pending.ID = "provider-c"
	pending.Status = models.StatusPending

	ranked := engine.Rank([]models.Provider{pending, providerB()})
	assert.Equal(t, []string{"provider-b"}, ids(ranked))
}

func TestEngine_Rank_DoesNotMutateInput(t *testing.T) {
	engine := newTestEngine(t)

	input := []models.Provider{providerB(), providerA()}
	_ = engine.Rank(input)

	assert.Equal(t, "provider-b", input[0].ID)
	assert.Equal(t, "provider-a", input[1].ID)
}

func TestTopN(t *testing.T) {
	engine := newTestEngine(t)
	ranked := engine.Rank([]models.Provider{providerA(), providerB(), providerE()})

	tests := []struct {
		name     string
		n        int
		expected []string
	}{
		{"negative", -1, []string{}},
		{"zero", 0, []string{}},
		{"one", 1, []string{"provider-a"}},
		{"exact", 3, []string{"provider-a", "provider-e", "provider-b"}},
		{"more than available", 10, []string{"provider-a", "provider-e", "provider-b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := TopN(ranked, tt.n)
			assert.NotNil(t, top)
			assert.Equal(t, tt.expected, ids(top))
		})
	}
}

func TestTopN_AppendDoesNotAliasRanked(t *testing.T) {
	engine := newTestEngine(t)
	ranked := engine.Rank([]models.Provider{providerA(), providerB(), providerE()})

	top := TopN(ranked, 1)
	_ = append(top, engine.Evaluate(&models.Provider{ID: "intruder", Status: models.StatusApproved}))

	assert.Equal(t, []string{"provider-a", "provider-e", "provider-b"}, ids(ranked))
}

func TestEngine_GetTopProviders_EmptyPool(t *testing.T) {
	engine := newTestEngine(t)

	top := engine.GetTopProviders([]models.Provider{}, 1)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestEngine_TopPerTier(t *testing.T) {
	engine := newTestEngine(t)

	budgetHigh := approvedProvider("budget-high")
	budgetHigh.PricingTier = models.TierBudget
	budgetHigh.Rating = floatPtr(4.0)

	pool := []models.Provider{providerE(), providerA(), providerB(), budgetHigh}

	t.Run("one per tier", func(t *testing.T) {
		tiers := engine.TopPerTier(pool, 1)

		require.Len(t, tiers, 3)
		assert.Equal(t, models.TierBudget, tiers[0].Tier)
		assert.Equal(t, []string{"budget-high"}, ids(tiers[0].Offers))
		assert.Equal(t, models.TierStandard, tiers[1].Tier)
		assert.Equal(t, []string{"provider-a"}, ids(tiers[1].Offers))
		assert.Equal(t, models.TierPremium, tiers[2].Tier)
		assert.Equal(t, []string{"provider-e"}, ids(tiers[2].Offers))
	})

	t.Run("empty tiers omitted", func(t *testing.T) {
		tiers := engine.TopPerTier([]models.Provider{providerB()}, 2)

		require.Len(t, tiers, 1)
		assert.Equal(t, models.TierBudget, tiers[0].Tier)
	})

	t.Run("zero per tier", func(t *testing.T) {
		assert.Empty(t, engine.TopPerTier(pool, 0))
	})
}

func TestEngine_Match(t *testing.T) {
	engine := newTestEngine(t)

	pending := providerA()
	pending.ID = "provider-c"
	pending.Status = models.StatusPending

	wrongCity := providerE()
	wrongCity.Cities = []models.City{models.CityScottsdale}

	ranked := engine.Match(models.MatchRequest{
		ServiceType: models.ServiceCleaning,
		City:        models.CityPhoenix,
		Providers:   []models.Provider{providerB(), pending, wrongCity, providerA()},
	})

	assert.Equal(t, []string{"provider-a", "provider-b"}, ids(ranked))
}

func BenchmarkEngine_Rank(b *testing.B) {
	engine := newTestEngine(b)

	pool := make([]models.Provider, 0, 500)
	for i := 0; i < 500; i++ {
		p := approvedProvider(fmt.Sprintf("p-%03d", i))
		p.Rating = floatPtr(float64(i%50) / 10)
		p.YearsExperience = i % 15
		p.TotalReviews = intPtr(i % 80)
		pool = append(pool, p)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Rank(pool)
	}
}
