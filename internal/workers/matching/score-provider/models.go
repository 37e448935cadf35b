// internal/workers/matching/score-provider/models.go
package scoreprovider

import "marketplace-workers/internal/models"

type Input struct {
	Provider    models.Provider    `json:"provider"`
	ServiceType models.ServiceType `json:"serviceType,omitempty"`
	City        models.City        `json:"city,omitempty"`
}

type Output struct {
	ProviderID string                `json:"providerId"`
	MatchScore int                   `json:"matchScore"`
	Badges     []models.Badge        `json:"badges"`
	Breakdown  models.ScoreBreakdown `json:"breakdown"`
	Eligible   bool                  `json:"eligible"`
}
