// internal/matching/eligibility.go
package matching

import "marketplace-workers/internal/models"

// Filter narrows a candidate pool by one eligibility rule.
type Filter interface {
	Apply(providers []models.Provider) []models.Provider
	Name() string
}

// StatusFilter drops every provider that is not approved. Pending and
// suspended providers are never matched.
type StatusFilter struct{}

func (StatusFilter) Name() string {
	return "StatusFilter"
}

func (StatusFilter) Apply(providers []models.Provider) []models.Provider {
	filtered := make([]models.Provider, 0, len(providers))
	for i := range providers {
		if providers[i].IsApproved() {
			filtered = append(filtered, providers[i])
		}
	}
	return filtered
}

// ServiceFilter keeps providers offering the requested service.
type ServiceFilter struct {
	ServiceType models.ServiceType
}

func (ServiceFilter) Name() string {
	return "ServiceFilter"
}

func (f ServiceFilter) Apply(providers []models.Provider) []models.Provider {
	filtered := make([]models.Provider, 0, len(providers))
	for i := range providers {
		if providers[i].OffersService(f.ServiceType) {
			filtered = append(filtered, providers[i])
		}
	}
	return filtered
}

// CityFilter keeps providers operating in the requested city.
type CityFilter struct {
	City models.City
}

func (CityFilter) Name() string {
	return "CityFilter"
}

func (f CityFilter) Apply(providers []models.Provider) []models.Provider {
	filtered := make([]models.Provider, 0, len(providers))
	for i := range providers {
		if providers[i].ServesCity(f.City) {
			filtered = append(filtered, providers[i])
		}
	}
	return filtered
}

// FilterChain applies filters in sequence.
type FilterChain struct {
	filters []Filter
}

// NewEligibilityChain builds the status, service and city chain for one request.
func NewEligibilityChain(serviceType models.ServiceType, city models.City) *FilterChain {
	return &FilterChain{
		filters: []Filter{
			StatusFilter{},
			ServiceFilter{ServiceType: serviceType},
			CityFilter{City: city},
		},
	}
}

// Apply always returns a non-nil slice.
func (fc *FilterChain) Apply(providers []models.Provider) []models.Provider {
	filtered := make([]models.Provider, 0, len(providers))
	filtered = append(filtered, providers...)
	for _, f := range fc.filters {
		filtered = f.Apply(filtered)
		if len(filtered) == 0 {
			break
		}
	}
	return filtered
}

// Stats reports how many providers survive each stage, keyed by filter name
// plus "initial".
func (fc *FilterChain) Stats(providers []models.Provider) map[string]int {
	stats := make(map[string]int, len(fc.filters)+1)
	stats["initial"] = len(providers)

	filtered := providers
	for _, f := range fc.filters {
		filtered = f.Apply(filtered)
		stats[f.Name()] = len(filtered)
	}
	return stats
}

// Rejections reports how many providers each filter removed.
func (fc *FilterChain) Rejections(providers []models.Provider) map[string]int {
	rejected := make(map[string]int, len(fc.filters))
	filtered := providers
	for _, f := range fc.filters {
		next := f.Apply(filtered)
		rejected[f.Name()] = len(filtered) - len(next)
		filtered = next
	}
	return rejected
}

// FilterEligible returns the approved providers that offer serviceType in
// city, in input order. Duplicates are kept. An empty result is not an error.
func FilterEligible(serviceType models.ServiceType, city models.City, providers []models.Provider) []models.Provider {
	return NewEligibilityChain(serviceType, city).Apply(providers)
}
