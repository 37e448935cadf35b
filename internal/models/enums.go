// internal/models/enums.go
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ServiceType is one of the service categories a provider can offer.
type ServiceType string

const (
	ServiceCleaning    ServiceType = "cleaning"
	ServiceLandscaping ServiceType = "landscaping"
	ServicePool        ServiceType = "pool"
)

// City is one of the supported service areas.
type City string

const (
	CityPhoenix    City = "phoenix"
	CityScottsdale City = "scottsdale"
	CityTempe      City = "tempe"
	CityMesa       City = "mesa"
	CityChandler   City = "chandler"
)

// PricingTier is the provider's self-declared price bracket.
type PricingTier string

const (
	TierBudget   PricingTier = "budget"
	TierStandard PricingTier = "standard"
	TierPremium  PricingTier = "premium"
)

// ProviderStatus is the lifecycle state owned by the approval workflow.
type ProviderStatus string

const (
	StatusPending   ProviderStatus = "pending"
	StatusApproved  ProviderStatus = "approved"
	StatusSuspended ProviderStatus = "suspended"
)

// ErrUnknownEnumValue is wrapped by every Parse* function.
var ErrUnknownEnumValue = errors.New("unknown enumeration value")

func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceCleaning, ServiceLandscaping, ServicePool}
}

func Cities() []City {
	return []City{CityPhoenix, CityScottsdale, CityTempe, CityMesa, CityChandler}
}

// PricingTiers returns the tiers in display order.
func PricingTiers() []PricingTier {
	return []PricingTier{TierBudget, TierStandard, TierPremium}
}

func ProviderStatuses() []ProviderStatus {
	return []ProviderStatus{StatusPending, StatusApproved, StatusSuspended}
}

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceCleaning, ServiceLandscaping, ServicePool:
		return true
	}
	return false
}

func (c City) Valid() bool {
	switch c {
	case CityPhoenix, CityScottsdale, CityTempe, CityMesa, CityChandler:
		return true
	}
	return false
}

func (t PricingTier) Valid() bool {
	switch t {
	case TierBudget, TierStandard, TierPremium:
		return true
	}
	return false
}

func (s ProviderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusSuspended:
		return true
	}
	return false
}

func ParseServiceType(v string) (ServiceType, error) {
	s := ServiceType(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: service type %q", ErrUnknownEnumValue, v)
	}
	return s, nil
}

func ParseCity(v string) (City, error) {
	c := City(v)
	if !c.Valid() {
		return "", fmt.Errorf("%w: city %q", ErrUnknownEnumValue, v)
	}
	return c, nil
}

func ParsePricingTier(v string) (PricingTier, error) {
	t := PricingTier(v)
	if !t.Valid() {
		return "", fmt.Errorf("%w: pricing tier %q", ErrUnknownEnumValue, v)
	}
	return t, nil
}

func ParseProviderStatus(v string) (ProviderStatus, error) {
	s := ProviderStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: provider status %q", ErrUnknownEnumValue, v)
	}
	return s, nil
}

// UnmarshalJSON rejects values outside the enumeration so decoded records
// are always well formed.
func (s *ServiceType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseServiceType(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (c *City) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseCity(raw)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (t *PricingTier) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParsePricingTier(raw)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (s *ProviderStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseProviderStatus(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
