// internal/matching/badges.go
package matching

import "marketplace-workers/internal/models"

// Badges derives display labels from the provider's own fields, in rule
// order: Top Rated, Best Value, Most Reliable. A provider without a rating
// never earns a rating-based badge. Badges do not influence the score.
func (e *Engine) Badges(p *models.Provider) []models.Badge {
	badges := make([]models.Badge, 0, 3)

	if p.Rating != nil && *p.Rating >= e.cfg.TopRatedMinRating {
		badges = append(badges, models.BadgeTopRated)
	}

	if p.PricingTier == models.TierBudget {
		badges = append(badges, models.BadgeBestValue)
	}

	if p.Rating != nil && *p.Rating >= e.cfg.ReliableMinRating &&
		p.ReviewsOrZero() >= e.cfg.ReliableMinReviewsCnt {
		badges = append(badges, models.BadgeMostReliable)
	}

	return badges
}
