// internal/common/config/config.go
package config

import (
	"fmt"
	"time"

	"marketplace-workers/internal/matching"
)

type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Database DatabaseConfig          `mapstructure:"database"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	Logging  LoggingConfig           `mapstructure:"logging"`
	Server   ServerConfig            `mapstructure:"server"`
	Matching MatchingConfig          `mapstructure:"matching"`
	Scoring  ScoringConfig           `mapstructure:"scoring"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	Plaintext      bool   `mapstructure:"plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// MatchingConfig selects where candidate pools come from and how the
// match-providers worker trims them.
type MatchingConfig struct {
	Source        string `mapstructure:"source"`
	ProviderIndex string `mapstructure:"provider_index"`
	CacheTTL      int    `mapstructure:"cache_ttl"` // seconds, 0 disables the cache
	DefaultTopN   int    `mapstructure:"default_top_n"`
	MaxTopN       int    `mapstructure:"max_top_n"`
	QueryTimeout  int    `mapstructure:"query_timeout"` // milliseconds
	MaxCandidates int    `mapstructure:"max_candidates"`
}

func (m MatchingConfig) CacheTTLDuration() time.Duration {
	return time.Duration(m.CacheTTL) * time.Second
}

type ScoringConfig struct {
	Weights struct {
		CityMatch  float64 `mapstructure:"city_match"`
		Rating     float64 `mapstructure:"rating"`
		Experience float64 `mapstructure:"experience"`
		Reviews    float64 `mapstructure:"reviews"`
		Insurance  float64 `mapstructure:"insurance"`
	} `mapstructure:"weights"`
	MaxRating                 float64 `mapstructure:"max_rating"`
	ExperienceSaturationYears int     `mapstructure:"experience_saturation_years"`
	ReviewSaturationCount     int     `mapstructure:"review_saturation_count"`
	Badges                    struct {
		TopRatedMinRating  float64 `mapstructure:"top_rated_min_rating"`
		ReliableMinRating  float64 `mapstructure:"reliable_min_rating"`
		ReliableMinReviews int     `mapstructure:"reliable_min_reviews"`
	} `mapstructure:"badges"`
}

// ToScoringConfig converts the loaded section into the engine's config.
func (s ScoringConfig) ToScoringConfig() matching.ScoringConfig {
	return matching.ScoringConfig{
		Weights: matching.Weights{
			CityMatch:  s.Weights.CityMatch,
			Rating:     s.Weights.Rating,
			Experience: s.Weights.Experience,
			Reviews:    s.Weights.Reviews,
			Insurance:  s.Weights.Insurance,
		},
		MaxRating:                 s.MaxRating,
		ExperienceSaturationYears: s.ExperienceSaturationYears,
		ReviewSaturationCount:     s.ReviewSaturationCount,
		TopRatedMinRating:         s.Badges.TopRatedMinRating,
		ReliableMinRating:         s.Badges.ReliableMinRating,
		ReliableMinReviewsCnt:     s.Badges.ReliableMinReviews,
	}
}
