// internal/models/provider.go
package models

// Provider is a read-only snapshot of a marketplace provider record.
type Provider struct {
	ID                string         `json:"id"`
	BusinessName      string         `json:"businessName"`
	Services          []ServiceType  `json:"services"`
	Cities            []City         `json:"cities"`
	PricingTier       PricingTier    `json:"pricingTier"`
	YearsExperience   int            `json:"yearsExperience"`
	InsuranceVerified bool           `json:"insuranceVerified"`
	Rating            *float64       `json:"rating,omitempty"`
	TotalReviews      *int           `json:"totalReviews,omitempty"`
	Status            ProviderStatus `json:"status"`
}

func (p *Provider) OffersService(s ServiceType) bool {
	for _, svc := range p.Services {
		if svc == s {
			return true
		}
	}
	return false
}

func (p *Provider) ServesCity(c City) bool {
	for _, city := range p.Cities {
		if city == c {
			return true
		}
	}
	return false
}

func (p *Provider) IsApproved() bool {
	return p.Status == StatusApproved
}

// RatingOrZero treats a provider without reviews as rated 0.
func (p *Provider) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

func (p *Provider) ReviewsOrZero() int {
	if p.TotalReviews == nil {
		return 0
	}
	return *p.TotalReviews
}

// Badge is a descriptive label derived from a provider's own attributes.
type Badge string

const (
	BadgeTopRated     Badge = "Top Rated"
	BadgeBestValue    Badge = "Best Value"
	BadgeMostReliable Badge = "Most Reliable"
)

// ScoreBreakdown holds the points contributed by each scoring component
// before rounding.
type ScoreBreakdown struct {
	CityMatch  float64 `json:"cityMatch"`
	Rating     float64 `json:"rating"`
	Experience float64 `json:"experience"`
	Reviews    float64 `json:"reviews"`
	Insurance  float64 `json:"insurance"`
}

func (b ScoreBreakdown) Total() float64 {
	return b.CityMatch + b.Rating + b.Experience + b.Reviews + b.Insurance
}

// MatchedProvider is the transient, never persisted result of scoring a provider.
type MatchedProvider struct {
	Provider
	MatchScore int            `json:"matchScore"`
	Badges     []Badge        `json:"badges"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
}

// MatchRequest is built per call by the presentation or workflow layer.
type MatchRequest struct {
	ServiceType ServiceType `json:"serviceType"`
	City        City        `json:"city"`
	Providers   []Provider  `json:"providers"`
}
