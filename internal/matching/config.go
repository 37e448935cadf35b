// internal/matching/config.go
package matching

import (
	"fmt"
	"math"
)

// Weights are the maximum points each scoring component can contribute.
type Weights struct {
	CityMatch  float64
	Rating     float64
	Experience float64
	Reviews    float64
	Insurance  float64
}

func (w Weights) Sum() float64 {
	return w.CityMatch + w.Rating + w.Experience + w.Reviews + w.Insurance
}

// ScoringConfig is the deployment-time scoring model. It is copied into the
// Engine at construction and never changes afterwards.
type ScoringConfig struct {
	Weights Weights

	MaxRating                 float64
	ExperienceSaturationYears int
	ReviewSaturationCount     int

	TopRatedMinRating     float64
	ReliableMinRating     float64
	ReliableMinReviewsCnt int
}

// DefaultScoringConfig returns the production weight table: 30/25/20/15/10,
// saturating at 10 years and 50 reviews.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: Weights{
			CityMatch:  30,
			Rating:     25,
			Experience: 20,
			Reviews:    15,
			Insurance:  10,
		},
		MaxRating:                 5,
		ExperienceSaturationYears: 10,
		ReviewSaturationCount:     50,
		TopRatedMinRating:         4.8,
		ReliableMinRating:         4.5,
		ReliableMinReviewsCnt:     25,
	}
}

// Validate checks that the weights form a 0-100 scale and that every
// threshold is usable.
func (c ScoringConfig) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"cityMatch":  w.CityMatch,
		"rating":     w.Rating,
		"experience": w.Experience,
		"reviews":    w.Reviews,
		"insurance":  w.Insurance,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("weight %s must be non-negative, got %v", name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-MaxScore) > 1e-9 {
		return fmt.Errorf("weights must sum to %d, got %v", MaxScore, sum)
	}
	if c.MaxRating <= 0 {
		return fmt.Errorf("max rating must be positive, got %v", c.MaxRating)
	}
	if c.ExperienceSaturationYears <= 0 {
		return fmt.Errorf("experience saturation must be positive, got %d", c.ExperienceSaturationYears)
	}
	if c.ReviewSaturationCount <= 0 {
		return fmt.Errorf("review saturation must be positive, got %d", c.ReviewSaturationCount)
	}
	if c.TopRatedMinRating < 0 || c.TopRatedMinRating > c.MaxRating {
		return fmt.Errorf("top rated threshold %v outside [0, %v]", c.TopRatedMinRating, c.MaxRating)
	}
	if c.ReliableMinRating < 0 || c.ReliableMinRating > c.MaxRating {
		return fmt.Errorf("reliable rating threshold %v outside [0, %v]", c.ReliableMinRating, c.MaxRating)
	}
	if c.ReliableMinReviewsCnt < 0 {
		return fmt.Errorf("reliable review threshold must be non-negative, got %d", c.ReliableMinReviewsCnt)
	}
	return nil
}
