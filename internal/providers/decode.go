// internal/providers/decode.go
package providers

import (
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/models"
)

// rawProvider is a directory record as stored, before enumeration checks.
type rawProvider struct {
	ID                string   `json:"id"`
	BusinessName      string   `json:"business_name"`
	Services          []string `json:"services"`
	Cities            []string `json:"cities"`
	PricingTier       string   `json:"pricing_tier"`
	YearsExperience   int      `json:"years_experience"`
	InsuranceVerified bool     `json:"insurance_verified"`
	Rating            *float64 `json:"rating"`
	TotalReviews      *int     `json:"total_reviews"`
	Status            string   `json:"status"`
}

// decodeRecord converts a stored record into a Provider. Unknown service or
// city tags are dropped; an unknown tier or status rejects the record.
func decodeRecord(raw rawProvider, log logger.Logger) (models.Provider, bool) {
	tier, err := models.ParsePricingTier(raw.PricingTier)
	if err != nil {
		log.Warn("Skipping provider record", map[string]interface{}{
			"providerId": raw.ID,
			"error":      err.Error(),
		})
		return models.Provider{}, false
	}

	status, err := models.ParseProviderStatus(raw.Status)
	if err != nil {
		log.Warn("Skipping provider record", map[string]interface{}{
			"providerId": raw.ID,
			"error":      err.Error(),
		})
		return models.Provider{}, false
	}

	services := make([]models.ServiceType, 0, len(raw.Services))
	for _, s := range raw.Services {
		svc, err := models.ParseServiceType(s)
		if err != nil {
			log.Warn("Dropping unknown service tag", map[string]interface{}{
				"providerId": raw.ID,
				"service":    s,
			})
			continue
		}
		services = append(services, svc)
	}

	cities := make([]models.City, 0, len(raw.Cities))
	for _, c := range raw.Cities {
		city, err := models.ParseCity(c)
		if err != nil {
			log.Warn("Dropping unknown city tag", map[string]interface{}{
				"providerId": raw.ID,
				"city":       c,
			})
			continue
		}
		cities = append(cities, city)
	}

	return models.Provider{
		ID:                raw.ID,
		BusinessName:      raw.BusinessName,
		Services:          services,
		Cities:            cities,
		PricingTier:       tier,
		YearsExperience:   raw.YearsExperience,
		InsuranceVerified: raw.InsuranceVerified,
		Rating:            raw.Rating,
		TotalReviews:      raw.TotalReviews,
		Status:            status,
	}, true
}

func decodeRecords(raws []rawProvider, log logger.Logger) []models.Provider {
	out := make([]models.Provider, 0, len(raws))
	for _, raw := range raws {
		if p, ok := decodeRecord(raw, log); ok {
			out = append(out, p)
		}
	}
	return out
}
