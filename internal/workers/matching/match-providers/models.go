// internal/workers/matching/match-providers/models.go
package matchproviders

import (
	"marketplace-workers/internal/matching"
	"marketplace-workers/internal/models"
)

type Input struct {
	ServiceType models.ServiceType `json:"serviceType"`
	City        models.City        `json:"city"`
	Providers   []models.Provider  `json:"providers,omitempty"`
	TopN        *int               `json:"topN,omitempty"`
	PerTier     bool               `json:"perTier,omitempty"`
}

type Output struct {
	MatchID        string                   `json:"matchId"`
	ServiceType    models.ServiceType       `json:"serviceType"`
	City           models.City              `json:"city"`
	Source         string                   `json:"source"`
	CandidateCount int                      `json:"candidateCount"`
	EligibleCount  int                      `json:"eligibleCount"`
	Offers         []models.MatchedProvider `json:"offers"`
	TierOffers     []matching.TierOffers    `json:"tierOffers,omitempty"`
}
