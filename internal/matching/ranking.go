// internal/matching/ranking.go
package matching

import (
	"sort"

	"marketplace-workers/internal/models"
)

// TierOffers is the ranked head of one pricing tier bucket.
type TierOffers struct {
	Tier   models.PricingTier       `json:"tier"`
	Offers []models.MatchedProvider `json:"offers"`
}

// Rank scores every approved provider and orders them by match score
// descending. Equal scores are ordered by total reviews descending, then by
// ID ascending, so the result does not depend on input order.
//
// Eligibility is the caller's job; non-approved records are skipped here
// anyway so they can never surface in a ranking.
func (e *Engine) Rank(eligible []models.Provider) []models.MatchedProvider {
	ranked := make([]models.MatchedProvider, 0, len(eligible))
	for i := range eligible {
		if !eligible[i].IsApproved() {
			continue
		}
		ranked = append(ranked, e.Evaluate(&eligible[i]))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return rankedBefore(&ranked[i], &ranked[j])
	})
	return ranked
}

func rankedBefore(a, b *models.MatchedProvider) bool {
	if a.MatchScore != b.MatchScore {
		return a.MatchScore > b.MatchScore
	}
	if ra, rb := a.ReviewsOrZero(), b.ReviewsOrZero(); ra != rb {
		return ra > rb
	}
	return a.ID < b.ID
}

// TopN returns the first n entries of an already ranked list. n larger than
// the list returns the whole list; n <= 0 returns an empty list. The result
// is capacity-limited so appending to it never overwrites ranked.
func TopN(ranked []models.MatchedProvider, n int) []models.MatchedProvider {
	if n <= 0 {
		return []models.MatchedProvider{}
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n:n]
}

// GetTopProviders ranks eligible and keeps the best n.
func (e *Engine) GetTopProviders(eligible []models.Provider, n int) []models.MatchedProvider {
	return TopN(e.Rank(eligible), n)
}

// RankByTier partitions the pool by pricing tier before ranking, so each
// bucket is ranked independently.
func (e *Engine) RankByTier(eligible []models.Provider) map[models.PricingTier][]models.MatchedProvider {
	buckets := make(map[models.PricingTier][]models.Provider)
	for i := range eligible {
		tier := eligible[i].PricingTier
		buckets[tier] = append(buckets[tier], eligible[i])
	}

	ranked := make(map[models.PricingTier][]models.MatchedProvider, len(buckets))
	for tier, pool := range buckets {
		if r := e.Rank(pool); len(r) > 0 {
			ranked[tier] = r
		}
	}
	return ranked
}

// TopPerTier returns the best n providers of each pricing tier in display
// order (budget, standard, premium). Tiers without providers are omitted,
// which guarantees offers from distinct tiers when n is 1.
func (e *Engine) TopPerTier(eligible []models.Provider, n int) []TierOffers {
	byTier := e.RankByTier(eligible)

	out := make([]TierOffers, 0, len(byTier))
	for _, tier := range models.PricingTiers() {
		ranked, ok := byTier[tier]
		if !ok {
			continue
		}
		top := TopN(ranked, n)
		if len(top) == 0 {
			continue
		}
		out = append(out, TierOffers{Tier: tier, Offers: top})
	}
	return out
}

// Match runs eligibility then ranking for one request.
func (e *Engine) Match(req models.MatchRequest) []models.MatchedProvider {
	return e.Rank(FilterEligible(req.ServiceType, req.City, req.Providers))
}
