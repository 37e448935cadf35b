// internal/matching/scoring.go
package matching

import (
	"fmt"
	"math"

	"marketplace-workers/internal/models"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Engine scores and ranks eligible providers with a fixed ScoringConfig.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg ScoringConfig
}

func NewEngine(cfg ScoringConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// MustNewEngine panics on an invalid config. Intended for package-level
// defaults and tests.
func MustNewEngine(cfg ScoringConfig) *Engine {
	e, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) Config() ScoringConfig {
	return e.cfg
}

// Breakdown computes each component's contribution before rounding.
//
// City match always saturates: eligibility already guarantees the provider
// serves the requested city, and no distance is computed anywhere upstream.
func (e *Engine) Breakdown(p *models.Provider) models.ScoreBreakdown {
	w := e.cfg.Weights

	insurance := 0.0
	if p.InsuranceVerified {
		insurance = w.Insurance
	}

	return models.ScoreBreakdown{
		CityMatch:  w.CityMatch,
		Rating:     clamp(p.RatingOrZero(), 0, e.cfg.MaxRating) * w.Rating / e.cfg.MaxRating,
		Experience: ramp(p.YearsExperience, e.cfg.ExperienceSaturationYears, w.Experience),
		Reviews:    ramp(p.ReviewsOrZero(), e.cfg.ReviewSaturationCount, w.Reviews),
		Insurance:  insurance,
	}
}

// Score returns the rounded 0-100 match score and its breakdown. Missing
// optional fields count as zero; the provider is never rejected.
func (e *Engine) Score(p *models.Provider) (int, models.ScoreBreakdown) {
	b := e.Breakdown(p)
	score := roundScore(b.Total())
	if score < MinScore {
		score = MinScore
	}
	if score > MaxScore {
		score = MaxScore
	}
	return score, b
}

// Evaluate builds the MatchedProvider for p. The input record is copied.
func (e *Engine) Evaluate(p *models.Provider) models.MatchedProvider {
	score, breakdown := e.Score(p)
	return models.MatchedProvider{
		Provider:   *p,
		MatchScore: score,
		Badges:     e.Badges(p),
		Breakdown:  breakdown,
	}
}

// roundScore rounds half away from zero after snapping the sum to six
// decimals, so a total such as 30 + 11.6 + 0.9 that lands a few ulps below
// 42.5 still rounds to 43.
func roundScore(total float64) int {
	return int(math.Round(math.Round(total*1e6) / 1e6))
}

// ramp grows linearly from 0 to weight and saturates at value >= saturation.
// Multiplying before dividing keeps exact halves such as 24.5 exact.
func ramp(value, saturation int, weight float64) float64 {
	if value <= 0 {
		return 0
	}
	if value > saturation {
		value = saturation
	}
	return float64(value) * weight / float64(saturation)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
