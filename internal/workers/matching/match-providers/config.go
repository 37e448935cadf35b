// internal/workers/matching/match-providers/config.go
package matchproviders

import (
	"time"

	"marketplace-workers/internal/common/config"
)

type Config struct {
	Timeout     time.Duration
	DefaultTopN int
	MaxTopN     int
}

func LoadConfig(cfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:     config.GetDuration(wcfg.Timeout),
		DefaultTopN: cfg.Matching.DefaultTopN,
		MaxTopN:     cfg.Matching.MaxTopN,
	}
}
